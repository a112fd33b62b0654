// Package output serializes tables to JSON and xlsx.
package output

import (
	"encoding/json"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
)

// ToJSON serializes a table to JSON.
func ToJSON(t *models.Table, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(t, "", "  ")
	}
	return json.Marshal(t)
}

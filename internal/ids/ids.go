// Package ids produces the sortable identifiers used for sessions and portal records.
package ids

import "github.com/segmentio/ksuid"

func New() string {
	return ksuid.New().String()
}

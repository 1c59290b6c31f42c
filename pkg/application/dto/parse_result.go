// Package dto defines the data transfer objects crossing the
// application boundary.
package dto

import "github.com/hqsteel/heatline/pkg/domain/entities"

// ParseResult is the complete output of one pipeline run. Errors holds
// every fatal error and advisory warning collected across the run;
// consumers partition by kind themselves. A heat is either wholly
// present in ValidHeats or wholly absent.
type ParseResult struct {
	RunID      string                     `json:"runId"`
	ValidHeats []entities.Heat            `json:"validHeats"`
	Errors     []entities.ValidationError `json:"errors"`
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"validocs/internal/models"
)

func docWithStatus(filename string, status models.ValidationStatus, findings ...models.Finding) *models.DocumentResult {
	return &models.DocumentResult{
		Filename:         filename,
		DocType:          models.DocumentTypeCedulaIdentidad,
		ValidationStatus: status,
		Findings:         findings,
	}
}

func TestAggregate(t *testing.T) {
	svc := NewAggregationService(testLogger())

	tests := []struct {
		name     string
		results  map[string]*models.DocumentResult
		expected models.GlobalStatus
	}{
		{
			name:     "empty input is rejected automatically",
			results:  map[string]*models.DocumentResult{},
			expected: models.GlobalRechazada,
		},
		{
			name: "all ok is cursado",
			results: map[string]*models.DocumentResult{
				"a.pdf": docWithStatus("a.pdf", models.ValidationOK),
				"b.pdf": docWithStatus("b.pdf", models.ValidationOK),
			},
			expected: models.GlobalCursado,
		},
		{
			name: "all error is rejected",
			results: map[string]*models.DocumentResult{
				"a.pdf": docWithStatus("a.pdf", models.ValidationError, critical("run", "x")),
				"b.pdf": docWithStatus("b.pdf", models.ValidationError, critical("run", "y")),
			},
			expected: models.GlobalRechazada,
		},
		{
			name: "any pending forces manual review",
			results: map[string]*models.DocumentResult{
				"a.pdf": docWithStatus("a.pdf", models.ValidationOK),
				"b.pdf": docWithStatus("b.pdf", models.ValidationPendienteManual, manual("sexo", "x")),
			},
			expected: models.GlobalPendienteManual,
		},
		{
			name: "mixed ok and error forces manual review",
			results: map[string]*models.DocumentResult{
				"a.pdf": docWithStatus("a.pdf", models.ValidationOK),
				"b.pdf": docWithStatus("b.pdf", models.ValidationError, critical("run", "x")),
			},
			expected: models.GlobalPendienteManual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, summary := svc.Aggregate(tt.results)
			assert.Equal(t, tt.expected, status)
			require.NotNil(t, summary)
			assert.Equal(t, tt.expected, summary.OverallStatus)
			assert.Equal(t, len(tt.results), summary.TotalDocuments)
			assert.NotEmpty(t, summary.StatusMessage)
		})
	}
}

func TestAggregateRejectionMessageIncludesErrorCount(t *testing.T) {
	svc := NewAggregationService(testLogger())

	results := map[string]*models.DocumentResult{
		"a.pdf": docWithStatus("a.pdf", models.ValidationError, critical("run", "x"), critical("fecha_vencimiento", "y")),
		"b.pdf": docWithStatus("b.pdf", models.ValidationError, critical("run", "z")),
	}

	status, summary := svc.Aggregate(results)
	assert.Equal(t, models.GlobalRechazada, status)
	assert.Contains(t, summary.StatusMessage, "3 errores en total")
}

func TestAggregateSummaryCounters(t *testing.T) {
	svc := NewAggregationService(testLogger())

	results := map[string]*models.DocumentResult{
		"cedula.pdf": docWithStatus("cedula.pdf", models.ValidationError,
			critical("run", "formato inválido"),
			critical("fecha_vencimiento", "vencida"),
		),
		"boleta.pdf": docWithStatus("boleta.pdf", models.ValidationOK),
		"refs.pdf":   docWithStatus("refs.pdf", models.ValidationPendienteManual, manual("sexo", "x")),
	}

	_, summary := svc.Aggregate(results)

	assert.Equal(t, 3, summary.TotalDocuments)
	assert.Equal(t, 3, summary.TotalErrors)
	assert.Equal(t, 2, summary.DocumentsWithErrors)
	assert.Equal(t, 1, summary.DocumentStatusSummary[models.ValidationOK])
	assert.Equal(t, 1, summary.DocumentStatusSummary[models.ValidationError])
	assert.Equal(t, 1, summary.DocumentStatusSummary[models.ValidationPendienteManual])

	require.Len(t, summary.ErrorDetails, 2)
	// details sorted by document id for deterministic output
	assert.Equal(t, "cedula.pdf", summary.ErrorDetails[0].DocumentID)
	assert.Equal(t, 2, summary.ErrorDetails[0].ErrorCount)
	assert.Equal(t, "refs.pdf", summary.ErrorDetails[1].DocumentID)
}

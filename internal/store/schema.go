package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	tableLLMRequestEvents = "llm_request_events"
	tableDocuments        = "documents"
	tableSequence         = "global_sequence"

	colID           = "id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"

	colSource     = "source"
	colDifficulty = "difficulty"
	colConcepts   = "concepts"
	colQuestions  = "questions"
	colData       = "data"

	colNextVal = "next_val"
)

// textSize marks a column as unbounded text.
const textSize = 2147483647

var (
	llmRequestEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colProvider, Type: field.TypeString},
		{Name: colModel, Type: field.TypeString},
		{Name: colPurpose, Type: field.TypeString},
		{Name: colInputTokens, Type: field.TypeInt, Default: 0},
		{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colErrorMessage, Type: field.TypeString, Size: textSize, Default: ""},
		{Name: colRequestBody, Type: field.TypeString, Size: textSize, Default: ""},
		{Name: colResponseBody, Type: field.TypeString, Size: textSize, Default: ""},
	}

	llmRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_provider", Columns: []*schema.Column{llmRequestEventsColumns[3]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmRequestEventsColumns[9]}},
		},
	}

	documentsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colSource, Type: field.TypeString, Default: ""},
		{Name: colDifficulty, Type: field.TypeString},
		{Name: colConcepts, Type: field.TypeInt, Default: 0},
		{Name: colQuestions, Type: field.TypeInt, Default: 0},
		{Name: colData, Type: field.TypeString, Size: textSize},
	}

	documentsTable = &schema.Table{
		Name:       tableDocuments,
		Columns:    documentsColumns,
		PrimaryKey: []*schema.Column{documentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "document_timestamp", Columns: []*schema.Column{documentsColumns[2]}},
		},
	}

	sequenceColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt},
		{Name: colNextVal, Type: field.TypeInt64, Default: 1},
	}

	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{
		llmRequestEventsTable,
		documentsTable,
		sequenceTable,
	}
)

// migrate creates or upgrades every table the repositories use.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repos.
const (
	tablePoints      = "points_events"
	tableAnswers     = "answer_events"
	tableAchievement = "achievement_events"
	tableLLM         = "llm_request_events"
	tableSnapshots   = "snapshots"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

// eventColumns returns the columns every event table starts with.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
	}
}

// eventTable builds an event table with the shared columns followed by
// extra, indexed on timestamp.
func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := append(eventColumns(), extra...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
}

var (
	pointsTable = eventTable(tablePoints,
		&schema.Column{Name: "amount", Type: field.TypeInt},
		&schema.Column{Name: "reason", Type: field.TypeString},
		&schema.Column{Name: "points_after", Type: field.TypeInt},
		&schema.Column{Name: "level_after", Type: field.TypeInt},
	)

	answersTable = eventTable(tableAnswers,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "operand_a", Type: field.TypeInt},
		&schema.Column{Name: "operand_b", Type: field.TypeInt},
		&schema.Column{Name: "answer", Type: field.TypeInt},
		&schema.Column{Name: "submitted", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64},
	)

	achievementTable = eventTable(tableAchievement,
		&schema.Column{Name: "achievement_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "title", Type: field.TypeString},
		&schema.Column{Name: "session_id", Type: field.TypeString},
	)

	llmTable = eventTable(tableLLM,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "request_body", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "response_body", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "session_id", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "question", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "answer", Type: field.TypeInt, Nullable: true},
		&schema.Column{Name: "submitted", Type: field.TypeInt, Nullable: true},
	)

	snapshotColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	snapshotsTable = &schema.Table{
		Name:       tableSnapshots,
		Columns:    snapshotColumns,
		PrimaryKey: []*schema.Column{snapshotColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshots_timestamp", Columns: []*schema.Column{snapshotColumns[2]}},
			{Name: "snapshots_sequence", Columns: []*schema.Column{snapshotColumns[1]}},
		},
	}

	// tables lists everything the migrator creates, in order.
	tables = []*schema.Table{
		pointsTable,
		answersTable,
		achievementTable,
		llmTable,
		snapshotsTable,
	}

	// eventTables are cleared by Reset along with the snapshots.
	eventTables = []string{tablePoints, tableAnswers, tableAchievement, tableLLM}
)

package migrations

func init() {
	add(Step{
		Version:     2,
		Description: "Add updated_at column to kv entries",
		Statements: []string{
			`ALTER TABLE kv ADD COLUMN updated_at INTEGER NOT NULL DEFAULT 0`,
		},
	})
}

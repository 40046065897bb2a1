package migrations

// Listing keys by recency reads this index.
func init() {
	add(Step{
		Version:     3,
		Description: "Index kv entries by updated_at",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv(updated_at DESC)`,
		},
	})
}

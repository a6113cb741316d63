package repository

// CursorStore persists the highest processed update id between runs.
// Load returns 0 when no prior value exists or reading fails; Save is
// best-effort and must never propagate persistence failures to the loop.
type CursorStore interface {
	Load() int64
	Save(id int64)
}

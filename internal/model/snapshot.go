package model

// Snapshot is the full persisted portfolio state: the asset collection and
// the transaction log, always exported and imported as a pair. A transaction
// log without its matching assets is not a valid snapshot for capital-gains
// purposes, though import tolerates a missing transaction array by
// defaulting it to empty.
type Snapshot struct {
	Assets       []Asset       `json:"assets"`
	Transactions []Transaction `json:"transactions"`
}

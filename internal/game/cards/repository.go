package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Database is a read-only id lookup over one card kind, built once at load.
type Database[T interface{ CardID() string }] struct {
	byID  map[string]T
	cards []T
}

// NewDatabase indexes the given cards by id. Later duplicates win, matching
// the map-construction behavior the card data relies on.
func NewDatabase[T interface{ CardID() string }](cards []T) *Database[T] {
	db := &Database[T]{byID: make(map[string]T, len(cards)), cards: cards}
	for _, c := range cards {
		db.byID[c.CardID()] = c
	}
	return db
}

// Get returns the card with the given id.
func (db *Database[T]) Get(id string) (T, bool) {
	c, ok := db.byID[id]
	return c, ok
}

// All returns every card in load order. The slice is shared; callers must
// treat it as read-only.
func (db *Database[T]) All() []T {
	return db.cards
}

// Len reports the number of cards in the database.
func (db *Database[T]) Len() int { return len(db.cards) }

// Databases bundles the per-kind card databases for one game session.
type Databases struct {
	Assets     *Database[*Asset]
	Spells     *Database[*Spell]
	Conditions *Database[*Condition]
	Gates      *Database[*Gate]
	Clues      *Database[*Clue]
	Encounters *Database[*Encounter]
}

// database file names under the data directory, one per kind
var databaseFiles = map[Kind]string{
	KindAsset:     "assets.json",
	KindSpell:     "spells.json",
	KindCondition: "conditions.json",
	KindGate:      "gates.json",
	KindClue:      "clues.json",
	KindEncounter: "encounters.json",
}

// LoadDatabases reads every card database file from dir. Each file is a JSON
// array of cards of one kind.
func LoadDatabases(dir string) (*Databases, error) {
	dbs := &Databases{}

	assets, err := loadFile[*Asset](dir, KindAsset)
	if err != nil {
		return nil, err
	}
	dbs.Assets = NewDatabase(assets)

	spells, err := loadFile[*Spell](dir, KindSpell)
	if err != nil {
		return nil, err
	}
	dbs.Spells = NewDatabase(spells)

	conditions, err := loadFile[*Condition](dir, KindCondition)
	if err != nil {
		return nil, err
	}
	dbs.Conditions = NewDatabase(conditions)

	gates, err := loadFile[*Gate](dir, KindGate)
	if err != nil {
		return nil, err
	}
	dbs.Gates = NewDatabase(gates)

	clues, err := loadFile[*Clue](dir, KindClue)
	if err != nil {
		return nil, err
	}
	dbs.Clues = NewDatabase(clues)

	encounters, err := loadFile[*Encounter](dir, KindEncounter)
	if err != nil {
		return nil, err
	}
	dbs.Encounters = NewDatabase(encounters)

	return dbs, nil
}

func loadFile[T interface{ CardID() string }](dir string, kind Kind) ([]T, error) {
	path := filepath.Join(dir, databaseFiles[kind])
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s database: %w", kind, err)
	}
	var cards []T
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse %s database %s: %w", kind, path, err)
	}
	for _, c := range cards {
		if c.CardID() == "" {
			return nil, fmt.Errorf("parse %s database %s: card with empty id", kind, path)
		}
	}
	return cards, nil
}

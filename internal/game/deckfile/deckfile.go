// Package deckfile loads deck composition files: YAML documents naming, per
// card kind, which card ids (with counts) make up the starting draw pile.
package deckfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/deck"
)

// File is the top-level YAML structure.
type File struct {
	Decks []Entry `yaml:"decks"`
}

// Entry is one starting deck: the card kind it feeds and its composition.
type Entry struct {
	Kind  string      `yaml:"kind"`
	Cards []CardCount `yaml:"cards"`
}

// CardCount names a card id and how many copies go in the deck.
type CardCount struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Parse reads a deck composition file.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse deck file %s: %w", path, err)
	}
	return &f, nil
}

// Build resolves the file against the card databases into the starting deck
// lists. A card id missing from its database or an unknown kind is an error:
// the composition and the databases must agree before a session starts.
func Build(f *File, dbs *cards.Databases) (deck.InitialDecks, error) {
	var out deck.InitialDecks
	for _, entry := range f.Decks {
		switch cards.Kind(entry.Kind) {
		case cards.KindAsset:
			resolved, err := resolve(entry, dbs.Assets.Get)
			if err != nil {
				return deck.InitialDecks{}, err
			}
			out.Assets = append(out.Assets, resolved...)
		case cards.KindSpell:
			resolved, err := resolve(entry, dbs.Spells.Get)
			if err != nil {
				return deck.InitialDecks{}, err
			}
			out.Spells = append(out.Spells, resolved...)
		case cards.KindCondition:
			resolved, err := resolve(entry, dbs.Conditions.Get)
			if err != nil {
				return deck.InitialDecks{}, err
			}
			out.Conditions = append(out.Conditions, resolved...)
		case cards.KindGate:
			resolved, err := resolve(entry, dbs.Gates.Get)
			if err != nil {
				return deck.InitialDecks{}, err
			}
			out.Gates = append(out.Gates, resolved...)
		case cards.KindClue:
			resolved, err := resolve(entry, dbs.Clues.Get)
			if err != nil {
				return deck.InitialDecks{}, err
			}
			out.Clues = append(out.Clues, resolved...)
		case cards.KindEncounter:
			resolved, err := resolve(entry, dbs.Encounters.Get)
			if err != nil {
				return deck.InitialDecks{}, err
			}
			out.Encounters = append(out.Encounters, resolved...)
		default:
			return deck.InitialDecks{}, fmt.Errorf("deck file: unknown card kind %q", entry.Kind)
		}
	}
	return out, nil
}

// Load parses and resolves in one step.
func Load(path string, dbs *cards.Databases) (deck.InitialDecks, error) {
	f, err := Parse(path)
	if err != nil {
		return deck.InitialDecks{}, err
	}
	return Build(f, dbs)
}

func resolve[T deck.Ref](entry Entry, get func(id string) (T, bool)) ([]T, error) {
	var out []T
	for _, cc := range entry.Cards {
		card, ok := get(cc.ID)
		if !ok {
			return nil, fmt.Errorf("deck file: %s deck references unknown card %q", entry.Kind, cc.ID)
		}
		count := cc.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			out = append(out, card)
		}
	}
	return out, nil
}

// Package market maintains the bounded shop of assets for sale, backed by
// the asset deck.
package market

import (
	"go.uber.org/zap"

	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/collection"
	"github.com/omenworks/omen-engine-go/internal/game/deck"
	"github.com/omenworks/omen-engine-go/internal/game/gamelog"
)

// DefaultMaxSize is the shop size when the constructor gets none.
const DefaultMaxSize = 4

// Market owns the shop id list and replenishes it from the asset deck.
type Market struct {
	logger  *zap.Logger
	log     *gamelog.Log
	deck    *deck.Deck[*cards.Asset]
	shop    *collection.List[*cards.Asset]
	maxSize int
}

// New builds an empty market over the asset deck and database. maxSize <= 0
// selects the default.
func New(d *deck.Deck[*cards.Asset], db *cards.Database[*cards.Asset], log *gamelog.Log, logger *zap.Logger, maxSize int) *Market {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Market{
		logger:  logger,
		log:     log,
		deck:    d,
		shop:    collection.New(db.Get),
		maxSize: maxSize,
	}
}

// Replenish draws from the asset deck until the shop is full or the deck is
// exhausted. Deck exhaustion is normal: the shop simply stays short.
func (m *Market) Replenish() {
	for m.shop.Len() < m.maxSize {
		asset, ok := m.deck.Draw()
		if !ok {
			break
		}
		m.shop.Add(asset.ID)
		m.log.Record(gamelog.KeyMarketReplenish, gamelog.Params{
			"assetId": asset.ID,
			"name":    asset.Name,
		})
	}
}

// Buy removes cardID from the shop and returns the asset, then backfills the
// shop. An id not in the shop returns nil with no state change. An id the
// database cannot resolve is still removed, treated as a lost entry, and the
// backfill still runs.
func (m *Market) Buy(cardID string) *cards.Asset {
	if !m.shop.Remove(cardID) {
		return nil
	}
	asset, ok := m.deck.CardByID(cardID)
	if ok {
		m.log.Record(gamelog.KeyMarketBuy, gamelog.Params{
			"assetId": asset.ID,
			"name":    asset.Name,
		})
	} else {
		m.logger.Warn("bought asset missing from database", zap.String("asset_id", cardID))
	}
	m.Replenish()
	if !ok {
		return nil
	}
	return asset
}

// Discard routes the asset into the asset deck's discard pile, independent
// of shop membership.
func (m *Market) Discard(asset *cards.Asset) {
	m.deck.Discard(asset)
	m.log.Record(gamelog.KeyMarketDiscard, gamelog.Params{
		"assetId": asset.ID,
		"name":    asset.Name,
	})
}

// Assets resolves the shop ids to full assets, dropping any the database no
// longer knows.
func (m *Market) Assets() []*cards.Asset {
	return m.shop.Resolve()
}

// IDs returns the raw shop id list.
func (m *Market) IDs() []string {
	return m.shop.IDs()
}

// SetIDs replaces the shop id list from a snapshot and tops it back up.
func (m *Market) SetIDs(ids []string) {
	m.shop.SetIDs(ids)
	m.Replenish()
}

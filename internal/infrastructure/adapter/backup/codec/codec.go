// Package codec converts snapshots to and from the JSON document stored in the backup store.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/shopspring/decimal"
)

// FileName is the name of the snapshot file inside a backup document
const FileName = "balance-data.json"

// amount is written as a bare JSON number and read from a number or a string
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}

type cardDoc struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   amount    `json:"balance"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type transactionDoc struct {
	ID          string    `json:"id"`
	CardID      string    `json:"cardId"`
	Amount      amount    `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type settingsDoc struct {
	Currency     *string `json:"currency,omitempty"`
	DateFormat   *string `json:"dateFormat,omitempty"`
	AutoSync     *bool   `json:"autoSync,omitempty"`
	SyncInterval *int    `json:"syncInterval,omitempty"`
}

type snapshotDoc struct {
	Cards        []cardDoc        `json:"cards"`
	Transactions []transactionDoc `json:"transactions"`
	Settings     settingsDoc      `json:"settings"`
	Version      string           `json:"version"`
	LastSyncTime *time.Time       `json:"lastSyncTime,omitempty"`
}

// Encode renders snapshot as indented JSON
func Encode(snapshot *entity.Snapshot) ([]byte, error) {
	if snapshot == nil {
		return nil, errs.NewValidationError("snapshot", "must not be nil")
	}

	doc := snapshotDoc{
		Cards:        make([]cardDoc, 0, len(snapshot.Cards)),
		Transactions: make([]transactionDoc, 0, len(snapshot.Transactions)),
		Settings: settingsDoc{
			Currency:     snapshot.Settings.Currency,
			DateFormat:   snapshot.Settings.DateFormat,
			AutoSync:     snapshot.Settings.AutoSync,
			SyncInterval: snapshot.Settings.SyncInterval,
		},
		Version: snapshot.Version,
	}
	if !snapshot.LastSyncTime.IsZero() {
		t := snapshot.LastSyncTime.UTC()
		doc.LastSyncTime = &t
	}

	for _, c := range snapshot.Cards {
		doc.Cards = append(doc.Cards, cardDoc{
			ID:        c.ID,
			Name:      c.Name,
			Balance:   amount(c.Balance),
			Color:     c.Color,
			CreatedAt: c.CreatedAt.UTC(),
			UpdatedAt: c.UpdatedAt.UTC(),
		})
	}
	for _, t := range snapshot.Transactions {
		doc.Transactions = append(doc.Transactions, transactionDoc{
			ID:          t.ID,
			CardID:      t.CardID,
			Amount:      amount(t.Amount),
			Type:        string(t.Type),
			Description: t.Description,
			Date:        t.Date.UTC(),
			CreatedAt:   t.CreatedAt.UTC(),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Decode validates the document shape and every record in it, then converts it
// to a snapshot. Nothing is returned unless the whole document is valid.
func Decode(data []byte) (*entity.Snapshot, error) {
	if err := ValidateShape(data); err != nil {
		return nil, err
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.NewValidationError("snapshot", fmt.Sprintf("malformed document: %v", err))
	}

	snapshot := &entity.Snapshot{
		Cards:        make([]entity.Card, 0, len(doc.Cards)),
		Transactions: make([]entity.Transaction, 0, len(doc.Transactions)),
		Settings: entity.SettingsUpdate{
			Currency:     doc.Settings.Currency,
			DateFormat:   doc.Settings.DateFormat,
			AutoSync:     doc.Settings.AutoSync,
			SyncInterval: doc.Settings.SyncInterval,
		},
		Version: doc.Version,
	}
	if doc.LastSyncTime != nil {
		snapshot.LastSyncTime = doc.LastSyncTime.UTC()
	}

	cardIDs := make(map[string]struct{}, len(doc.Cards))
	for i, c := range doc.Cards {
		if err := validateCard(i, c, cardIDs); err != nil {
			return nil, err
		}
		snapshot.Cards = append(snapshot.Cards, entity.Card{
			ID:        c.ID,
			Name:      c.Name,
			Balance:   decimal.Decimal(c.Balance),
			Color:     c.Color,
			CreatedAt: c.CreatedAt.UTC(),
			UpdatedAt: c.UpdatedAt.UTC(),
		})
	}
	transactionIDs := make(map[string]struct{}, len(doc.Transactions))
	for i, t := range doc.Transactions {
		txType, err := validateTransaction(i, t, transactionIDs)
		if err != nil {
			return nil, err
		}
		snapshot.Transactions = append(snapshot.Transactions, entity.Transaction{
			ID:          t.ID,
			CardID:      t.CardID,
			Amount:      decimal.Decimal(t.Amount),
			Type:        txType,
			Description: t.Description,
			Date:        t.Date.UTC(),
			CreatedAt:   t.CreatedAt.UTC(),
		})
	}

	return snapshot, nil
}

func validateCard(i int, c cardDoc, seen map[string]struct{}) error {
	field := func(name string) string { return fmt.Sprintf("cards[%d].%s", i, name) }

	if c.ID == "" {
		return errs.NewValidationError(field("id"), "must not be empty")
	}
	if _, dup := seen[c.ID]; dup {
		return errs.NewValidationError(field("id"), fmt.Sprintf("duplicate id %q", c.ID))
	}
	seen[c.ID] = struct{}{}

	if strings.TrimSpace(c.Name) == "" {
		return errs.NewValidationError(field("name"), "must not be blank")
	}
	return nil
}

func validateTransaction(i int, t transactionDoc, seen map[string]struct{}) (entity.TransactionType, error) {
	field := func(name string) string { return fmt.Sprintf("transactions[%d].%s", i, name) }

	if t.ID == "" {
		return "", errs.NewValidationError(field("id"), "must not be empty")
	}
	if _, dup := seen[t.ID]; dup {
		return "", errs.NewValidationError(field("id"), fmt.Sprintf("duplicate id %q", t.ID))
	}
	seen[t.ID] = struct{}{}

	txType, err := entity.ParseTransactionType(t.Type)
	if err != nil {
		return "", errs.NewValidationError(field("type"), err.Error())
	}
	if err := entity.ValidatePositiveAmount(decimal.Decimal(t.Amount)); err != nil {
		return "", errs.NewValidationError(field("amount"), err.Error())
	}
	if strings.TrimSpace(t.Description) == "" {
		return "", errs.NewValidationError(field("description"), "must not be blank")
	}
	if t.Date.IsZero() {
		return "", errs.NewValidationError(field("date"), "must be set")
	}
	return txType, nil
}

// ValidateShape checks the top-level structure: a cards array, a transactions array,
// a settings object and a non-empty version string
func ValidateShape(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return errs.NewValidationError("snapshot", "document is not a JSON object")
	}

	if !isJSONKind(top["cards"], '[') {
		return errs.NewValidationError("cards", "missing cards array")
	}
	if !isJSONKind(top["transactions"], '[') {
		return errs.NewValidationError("transactions", "missing transactions array")
	}
	if !isJSONKind(top["settings"], '{') {
		return errs.NewValidationError("settings", "missing settings object")
	}

	var version string
	if raw, ok := top["version"]; !ok || json.Unmarshal(raw, &version) != nil || version == "" {
		return errs.NewValidationError("version", "missing version")
	}
	return nil
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}

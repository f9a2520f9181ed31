package discount

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrCodeExists = errors.New("discount code already exists")

const (
	codePrefix    = "DISCOUNT-"
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeSuffixLen = 6
)

// Ledger is the registry of discount codes. One mutex guards the whole
// registry; every read hands out copies so callers never observe a
// half-updated entry.
type Ledger struct {
	mu    sync.RWMutex
	codes []*Code
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Generate mints a new code. A custom code string is used verbatim but
// rejected with ErrCodeExists if the ledger already holds that exact string.
// Without a custom code a random one is synthesized; ownerUserID may be empty
// for admin-pool codes anyone can redeem.
func (l *Ledger) Generate(customCode, ownerUserID string) (Code, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	code := customCode
	if code == "" {
		code = codePrefix + randomSuffix()
	} else {
		for _, dc := range l.codes {
			if dc.Code == code {
				return Code{}, fmt.Errorf("discount: %w: %s", ErrCodeExists, code)
			}
		}
	}

	entry := &Code{
		Code:        code,
		OwnerUserID: ownerUserID,
		CreatedAt:   time.Now().UTC(),
	}
	l.codes = append(l.codes, entry)

	log.Info().Str("code", code).Str("owner_user_id", ownerUserID).Msg("discount: code generated")

	return *entry, nil
}

// Validate returns the entry for code iff it exists, is unused, and is
// either unowned or owned by requestingUserID. A code owned by someone else
// is indistinguishable from a missing one; the ownership boundary must not
// leak through this lookup.
func (l *Ledger) Validate(code, requestingUserID string) (Code, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, dc := range l.codes {
		if dc.Code == code && !dc.Used && (dc.OwnerUserID == "" || dc.OwnerUserID == requestingUserID) {
			return *dc, true
		}
	}
	return Code{}, false
}

// Redeem marks the first entry matching code as used and records the order
// that consumed it. First commit wins: an already-used entry is left
// untouched, and an unknown code is a silent no-op since redemption only
// happens after a successful Validate.
func (l *Ledger) Redeem(code, orderID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, dc := range l.codes {
		if dc.Code != code {
			continue
		}
		if dc.Used {
			log.Warn().Str("code", code).Str("order_id", orderID).Msg("discount: redeem skipped, code already used")
			return
		}
		now := time.Now().UTC()
		dc.Used = true
		dc.OrderID = orderID
		dc.UsedAt = &now
		return
	}
}

// ListAll returns every code, newest first. Entries created at the same
// instant keep their insertion order.
func (l *Ledger) ListAll() []Code {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Code, len(l.codes))
	for i, dc := range l.codes {
		out[i] = *dc
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ListOwned returns the codes minted for one user, in creation order.
func (l *Ledger) ListOwned(userID string) []Code {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Code
	for _, dc := range l.codes {
		if dc.OwnerUserID == userID {
			out = append(out, *dc)
		}
	}
	return out
}

// ListAvailable returns the user's own codes that are still redeemable.
func (l *Ledger) ListAvailable(userID string) []Code {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Code
	for _, dc := range l.codes {
		if dc.OwnerUserID == userID && !dc.Used {
			out = append(out, *dc)
		}
	}
	return out
}

func randomSuffix() string {
	buf := make([]byte, codeSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(fmt.Sprintf("discount: failed to read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

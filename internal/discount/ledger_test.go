package discount_test

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecom-labs/storefront/internal/discount"
)

func TestLedger_Generate_RandomCodeFormat(t *testing.T) {
	l := discount.NewLedger()

	dc, err := l.Generate("", "user-1")
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^DISCOUNT-[A-Z0-9]{6}$`), dc.Code)
	assert.False(t, dc.Used)
	assert.Equal(t, "user-1", dc.OwnerUserID)
	assert.False(t, dc.CreatedAt.IsZero())
}

func TestLedger_Generate_CustomCode(t *testing.T) {
	l := discount.NewLedger()

	dc, err := l.Generate("SAVE10", "")
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", dc.Code)
	assert.Empty(t, dc.OwnerUserID)
}

func TestLedger_Generate_RejectsDuplicateCustomCode(t *testing.T) {
	l := discount.NewLedger()

	_, err := l.Generate("SAVE10", "")
	assert.NoError(t, err)

	_, err = l.Generate("SAVE10", "user-1")
	assert.ErrorIs(t, err, discount.ErrCodeExists)

	// The failed attempt must not have added a second entry.
	assert.Len(t, l.ListAll(), 1)
}

func TestLedger_Validate(t *testing.T) {
	l := discount.NewLedger()
	_, err := l.Generate("SHARED", "")
	assert.NoError(t, err)
	_, err = l.Generate("OWNED", "user-1")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		code      string
		userID    string
		wantMatch bool
	}{
		{"unowned_code_any_user", "SHARED", "user-2", true},
		{"owned_code_by_owner", "OWNED", "user-1", true},
		{"owned_code_by_other_user", "OWNED", "user-2", false},
		{"unknown_code", "NOPE", "user-1", false},
		{"case_sensitive", "shared", "user-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc, ok := l.Validate(tt.code, tt.userID)
			assert.Equal(t, tt.wantMatch, ok)
			if ok {
				assert.Equal(t, tt.code, dc.Code)
			}
		})
	}
}

func TestLedger_Redeem(t *testing.T) {
	l := discount.NewLedger()
	_, err := l.Generate("SAVE10", "")
	assert.NoError(t, err)

	l.Redeem("SAVE10", "order-1")

	codes := l.ListAll()
	assert.Len(t, codes, 1)
	assert.True(t, codes[0].Used)
	assert.Equal(t, "order-1", codes[0].OrderID)
	assert.NotNil(t, codes[0].UsedAt)

	// Redeemed codes are invisible to every user.
	_, ok := l.Validate("SAVE10", "user-1")
	assert.False(t, ok)
	_, ok = l.Validate("SAVE10", "user-2")
	assert.False(t, ok)
}

func TestLedger_Redeem_FirstCommitWins(t *testing.T) {
	l := discount.NewLedger()
	_, err := l.Generate("SAVE10", "")
	assert.NoError(t, err)

	l.Redeem("SAVE10", "order-1")
	l.Redeem("SAVE10", "order-2")

	codes := l.ListAll()
	assert.Equal(t, "order-1", codes[0].OrderID)
	firstUsedAt := *codes[0].UsedAt

	l.Redeem("SAVE10", "order-3")
	codes = l.ListAll()
	assert.Equal(t, "order-1", codes[0].OrderID)
	assert.Equal(t, firstUsedAt, *codes[0].UsedAt)
}

func TestLedger_Redeem_UnknownCodeIsNoOp(t *testing.T) {
	l := discount.NewLedger()
	l.Redeem("GHOST", "order-1")
	assert.Empty(t, l.ListAll())
}

func TestLedger_ConcurrentRedeem_ExactlyOneWinner(t *testing.T) {
	l := discount.NewLedger()
	_, err := l.Generate("SAVE10", "")
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		orderID := fmt.Sprintf("order-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Redeem("SAVE10", orderID)
		}()
	}
	wg.Wait()

	codes := l.ListAll()
	assert.Len(t, codes, 1)
	assert.True(t, codes[0].Used)
	assert.NotEmpty(t, codes[0].OrderID)
	assert.NotNil(t, codes[0].UsedAt)
}

func TestLedger_ListAll_NewestFirst(t *testing.T) {
	l := discount.NewLedger()
	for _, code := range []string{"FIRST", "SECOND", "THIRD"} {
		_, err := l.Generate(code, "")
		assert.NoError(t, err)
	}

	codes := l.ListAll()
	assert.Len(t, codes, 3)
	// Creation timestamps may collide within clock resolution; the sort is
	// stable, so equal timestamps keep insertion order. Verify no entry
	// created strictly later sorts after an earlier one.
	for i := 1; i < len(codes); i++ {
		assert.False(t, codes[i].CreatedAt.After(codes[i-1].CreatedAt),
			"entry %d created after entry %d", i, i-1)
	}
}

func TestLedger_ListOwnedAndAvailable(t *testing.T) {
	l := discount.NewLedger()
	_, err := l.Generate("MINE-1", "user-1")
	assert.NoError(t, err)
	_, err = l.Generate("MINE-2", "user-1")
	assert.NoError(t, err)
	_, err = l.Generate("THEIRS", "user-2")
	assert.NoError(t, err)
	_, err = l.Generate("POOL", "")
	assert.NoError(t, err)

	owned := l.ListOwned("user-1")
	assert.Len(t, owned, 2)

	l.Redeem("MINE-1", "order-1")

	available := l.ListAvailable("user-1")
	assert.Len(t, available, 1)
	assert.Equal(t, "MINE-2", available[0].Code)

	// listAll still shows codes that Validate hides from other users.
	assert.Len(t, l.ListAll(), 4)
}

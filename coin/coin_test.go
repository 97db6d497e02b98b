package coin

import (
	"testing"

	"github.com/iov-one/bazaar/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin":       {coin: NewCoin(100, "IOV"), wantErr: nil},
		"zero amount":      {coin: NewCoin(0, "IOV"), wantErr: nil},
		"four letters":     {coin: NewCoin(1, "BAZR"), wantErr: nil},
		"lowercase ticker": {coin: NewCoin(1, "iov"), wantErr: errors.ErrAmount},
		"too long ticker":  {coin: NewCoin(1, "MONEYS"), wantErr: errors.ErrAmount},
		"empty ticker":     {coin: NewCoin(1, ""), wantErr: errors.ErrAmount},
		"negative amount":  {coin: NewCoin(-4, "IOV"), wantErr: errors.ErrOverflow},
		"above maximum":    {coin: NewCoin(MaxAmount+1, "IOV"), wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestCoinAddSubtract(t *testing.T) {
	a := NewCoin(100, "IOV")
	b := NewCoin(42, "IOV")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(142, "IOV"), sum)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(58, "IOV"), diff)

	// Currency mismatch fails.
	if _, err := a.Add(NewCoin(1, "ETH")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want ErrAmount, got %+v", err)
	}

	// Going negative fails.
	if _, err := b.Subtract(a); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want ErrOverflow, got %+v", err)
	}
}

func TestCoinSerialization(t *testing.T) {
	orig := NewCoin(7654, "IOV")
	raw, err := orig.Marshal()
	require.NoError(t, err)

	var got Coin
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, orig, got)
}

func TestCoinsAddKeepsInvariants(t *testing.T) {
	set, err := NewCoins(NewCoin(5, "IOV"), NewCoin(3, "ETH"))
	require.NoError(t, err)
	require.NoError(t, set.Validate())

	// sorted by ticker
	assert.Equal(t, "ETH", set[0].Ticker)
	assert.Equal(t, "IOV", set[1].Ticker)

	// merge same currency
	set, err = set.Add(NewCoin(2, "IOV"))
	require.NoError(t, err)
	assert.True(t, set.Contains(NewCoin(7, "IOV")))

	// drop to zero removes the entry
	set, err = set.Subtract(NewCoin(3, "ETH"))
	require.NoError(t, err)
	assert.Len(t, set, 1)

	// cannot go below zero
	if _, err := set.Subtract(NewCoin(8, "IOV")); err == nil {
		t.Fatal("subtracting below zero must fail")
	}
}

func TestCoinsContains(t *testing.T) {
	set, err := NewCoins(NewCoin(10, "IOV"))
	require.NoError(t, err)

	assert.True(t, set.Contains(NewCoin(10, "IOV")))
	assert.True(t, set.Contains(NewCoin(1, "IOV")))
	assert.False(t, set.Contains(NewCoin(11, "IOV")))
	assert.False(t, set.Contains(NewCoin(1, "ETH")))
}

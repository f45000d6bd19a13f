package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_Value(t *testing.T) {
	v, err := Attributes(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Attributes{{Type: "Rarity", Value: "Legendary"}, {Type: "Level", Value: "50"}}.Value()
	require.NoError(t, err)
	assert.Equal(t, `[{"type":"Rarity","value":"Legendary"},{"type":"Level","value":"50"}]`, v)
}

func TestAttributes_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    Attributes
		wantErr bool
	}{
		{name: "null", src: nil, want: nil},
		{name: "bytes", src: []byte(`[{"type":"Rarity","value":"Rare"}]`), want: Attributes{{Type: "Rarity", Value: "Rare"}}},
		{name: "string keeps order", src: `[{"type":"b","value":"2"},{"type":"a","value":"1"}]`, want: Attributes{{Type: "b", Value: "2"}, {Type: "a", Value: "1"}}},
		{name: "json null", src: "null", want: nil},
		{name: "bad json", src: "{", wantErr: true},
		{name: "bad type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Attributes{{Type: "stale", Value: "x"}}
			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNFT_JSONShape(t *testing.T) {
	n := NFT{
		ID:            "nft_1",
		Name:          "CryptoDog #1",
		DogKey:        "KEY_1",
		WalletAddress: "0xabc",
		Status:        StatusGenerating,
		Progress:      50,
		CreatedAt:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	b, err := json.Marshal(n)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "2024-03-15T10:30:00Z", m["createdAt"])
	assert.Equal(t, "0xabc", m["walletAddress"])
	for _, k := range []string{"description", "imageUrl", "contractAddress", "tokenId", "mintedAt", "attributes"} {
		v, ok := m[k]
		assert.True(t, ok, k)
		assert.Nil(t, v, k)
	}
}

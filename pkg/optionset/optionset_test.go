// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package optionset_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rookery/pkg/optionset"
)

/*
TestDecode verifies duplicates collapse and empty keys are dropped.
*/
func TestDecode(t *testing.T) {
	set := optionset.Decode([]string{"sysadmin", "kernel", "sysadmin", ""})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("sysadmin"))
	assert.True(t, set.Contains("kernel"))
	assert.False(t, set.Contains(""))
}

/*
TestEncode_Deterministic verifies the encoded slice is sorted regardless of
insertion order.
*/
func TestEncode_Deterministic(t *testing.T) {
	set := optionset.Of("lca2003", "lca2001", "lca2002")

	assert.Equal(t, []string{"lca2001", "lca2002", "lca2003"}, set.Encode())
}

/*
TestJSON_RoundTrip verifies the set marshals as a sorted array and decodes
back to the same membership.
*/
func TestJSON_RoundTrip(t *testing.T) {
	set := optionset.Of("kernel", "sysadmin")

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["kernel","sysadmin"]`, string(data))

	var decoded optionset.Set
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Contains("kernel"))
	assert.True(t, decoded.Contains("sysadmin"))
	assert.Equal(t, 2, decoded.Len())
}

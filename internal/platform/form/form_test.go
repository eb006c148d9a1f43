// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rookery/internal/platform/form"
)

/*
TestDecode_NestedGroups verifies that flat dotted keys decode into nested
groups with leaf fields.
*/
func TestDecode_NestedGroups(t *testing.T) {
	values := url.Values{
		"person.email_address": {"tux@example.org"},
		"person.handle":        {"tux"},
		"registration.type":    {"Professional"},
		"registration.city":    {"Hobart"},
	}

	tree := form.Decode(values)

	person := tree.Group("person")
	assert.Equal(t, "tux@example.org", person.Get("email_address"))
	assert.Equal(t, "tux", person.Get("handle"))

	registration := tree.Group("registration")
	assert.Equal(t, "Professional", registration.Get("type"))
	assert.Equal(t, "Hobart", registration.Get("city"))
}

/*
TestDecode_BracketSyntax verifies that bracketed keys decode identically to
dotted keys.
*/
func TestDecode_BracketSyntax(t *testing.T) {
	values := url.Values{
		"person[email_address]": {"tux@example.org"},
	}

	tree := form.Decode(values)
	assert.Equal(t, "tux@example.org", tree.Group("person").Get("email_address"))
}

/*
TestDecode_RepeatedValues verifies that multi-select fields keep every
submitted value.
*/
func TestDecode_RepeatedValues(t *testing.T) {
	values := url.Values{
		"registration.miniconf": {"sysadmin", "kernel"},
	}

	tree := form.Decode(values)
	assert.Equal(t, []string{"sysadmin", "kernel"}, tree.Group("registration").Values("miniconf"))
}

/*
TestTree_MissingGroup verifies that absent groups read as empty trees rather
than nil.
*/
func TestTree_MissingGroup(t *testing.T) {
	tree := form.NewTree()

	group := tree.Group("person")
	require.NotNil(t, group)
	assert.Empty(t, group.Get("email_address"))
	assert.False(t, tree.HasGroup("person"))
}

/*
TestTree_HasDistinguishesAbsentFromEmpty verifies presence tracking for
fields submitted with an empty value.
*/
func TestTree_HasDistinguishesAbsentFromEmpty(t *testing.T) {
	tree := form.NewTree()
	tree.Set("diet", "")

	assert.True(t, tree.Has("diet"))
	assert.False(t, tree.Has("special"))
}

/*
TestErrorTree_Empty verifies deep emptiness: a tree with only empty groups is
still empty, and any nested issue makes it non-empty.
*/
func TestErrorTree_Empty(t *testing.T) {
	errs := form.NewErrorTree()
	assert.True(t, errs.Empty())

	// Creating a group does not make the tree non-empty.
	errs.Group("person")
	assert.True(t, errs.Empty())

	errs.Group("person").AddField("handle", form.CodeMissingField, "Please enter a value")
	assert.False(t, errs.Empty())
}

/*
TestErrorTree_NodeIssues verifies aggregate failures attached at a sub-schema
node are counted and found.
*/
func TestErrorTree_NodeIssues(t *testing.T) {
	errs := form.NewErrorTree()
	errs.Group("registration").AddNode(form.Code("ALREADY_REGISTERED"), "This person is already registered")

	assert.False(t, errs.Empty())
	assert.True(t, errs.HasCode(form.Code("ALREADY_REGISTERED")))
	assert.False(t, errs.HasCode(form.CodeInvalidEmail))
}

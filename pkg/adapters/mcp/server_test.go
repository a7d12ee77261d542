package mcp

import (
	"context"
	"testing"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/forms"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := fieldlayout.New()
	require.NoError(t, err)
	return NewServer(eng)
}

func TestHandleListForms(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleListForms(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `["bank_account_usd","mailing_address"]`, text.Text)
}

func TestHandleFormLayout(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	layout, err := s.handleFormLayout(ctx, mcp.CallToolRequest{}, map[string]interface{}{"form_id": forms.MailingAddress})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"address.streetAddress"},
		{"address.city"},
		{"address.state", "address.postCode"},
	}, layout.Keys())

	_, err = s.handleFormLayout(ctx, mcp.CallToolRequest{}, map[string]interface{}{"form_id": "nope"})
	assert.ErrorIs(t, err, domain.ErrFormNotFound)

	_, err = s.handleFormLayout(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestHandleGroupFields(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	layout, err := s.handleGroupFields(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"fields": `[{"key":"accountNumber"},{"key":"abartn"}]`,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"accountNumber", "abartn"}}, layout.Keys())

	layout, err = s.handleGroupFields(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"fields": `[{"key":"x"},{"key":"y"},{"key":"z"}]`,
		"pairs":  `[["z","x"]]`,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x", "z"}, {"y"}}, layout.Keys())

	_, err = s.handleGroupFields(ctx, mcp.CallToolRequest{}, map[string]interface{}{"fields": `nope`})
	assert.Error(t, err)

	_, err = s.handleGroupFields(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"fields": `[]`,
		"pairs":  `[["a","b","c"]]`,
	})
	assert.Error(t, err)
}

func TestHandleValidateForm(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleValidateForm(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"form_id": forms.MailingAddress,
		"values":  `{"address":{"streetAddress":"1 Main St","city":"Reno","state":"NV","postCode":"89501"}}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	resp, err = s.handleValidateForm(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"form_id": forms.MailingAddress,
		"values":  `{}`,
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Len(t, resp.Errors, 4)

	_, err = s.handleValidateForm(ctx, mcp.CallToolRequest{}, map[string]interface{}{"form_id": "nope"})
	assert.ErrorIs(t, err, domain.ErrFormNotFound)
}

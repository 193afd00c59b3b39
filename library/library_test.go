package library

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
	"github.com/poiesic/rightsdesk/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGateway counts payment sessions and can be made to fail.
type recordingGateway struct {
	calls    int
	requests []PaymentRequest
	err      error
}

func (g *recordingGateway) CreateSession(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	g.calls++
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &PaymentReceipt{Reference: "wallet-tx-" + req.Title, Amount: req.Amount}, nil
}

type fixture struct {
	repos   *badger.Repositories
	library *Library
	gateway *recordingGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	ctx := context.Background()
	_, err = repos.Content.AddRights(ctx,
		&core.RightsEntry{Id: 1, Title: "Tenant Rights"},
		&core.RightsEntry{Id: 2, Title: "Employment Rights"},
	)
	require.NoError(t, err)
	_, err = repos.Content.AddTemplates(ctx,
		&core.TemplateEntry{Id: 10, Title: "Tenant Complaint Letter", Price: 0.001, Body: "Dear landlord"},
		&core.TemplateEntry{Id: 11, Title: "Repair  Request\tNotice", Body: "Please repair"},
		&core.TemplateEntry{Id: 12, Title: "Premium Free", Premium: true, Body: "flagged"},
	)
	require.NoError(t, err)

	gateway := &recordingGateway{}
	lib, err := NewLibrary(repos.Content, repos.Library, repos.Unlocks,
		WithGateway(gateway), WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	return &fixture{repos: repos, library: lib, gateway: gateway}
}

func TestNewLibrary_RequiresRepositories(t *testing.T) {
	_, err := NewLibrary(nil, nil, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestSave_DuplicatesAreNoops(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.library.SaveRights(ctx, 2)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.library.SaveRights(ctx, 2)
	require.NoError(t, err)
	assert.False(t, added)

	added, err = f.library.SaveTemplate(ctx, 11)
	require.NoError(t, err)
	assert.True(t, added)

	saved, err := f.library.Saved(ctx)
	require.NoError(t, err)
	require.Len(t, saved.Rights, 1)
	assert.Equal(t, "Employment Rights", saved.Rights[0].Title)
	require.Len(t, saved.Templates, 1)
	assert.Equal(t, core.ID(11), saved.Templates[0].Id)
}

func TestSave_UnknownEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.library.SaveRights(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = f.library.SaveTemplate(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaved_SkipsRemovedEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.library.SaveRights(ctx, 1)
	require.NoError(t, err)
	_, err = f.library.SaveRights(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, f.repos.Content.DeleteRights(ctx, 1))

	saved, err := f.library.Saved(ctx)
	require.NoError(t, err)
	require.Len(t, saved.Rights, 1)
	assert.Equal(t, core.ID(2), saved.Rights[0].Id)
	assert.Empty(t, saved.Templates)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.library.SaveRights(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.library.Remove(ctx, core.KindRights, 1))
	assert.ErrorIs(t, f.library.Remove(ctx, core.KindRights, 1), storage.ErrNotFound)
	assert.ErrorIs(t, f.library.Remove(ctx, core.Kind("video"), 1), core.ErrInvalidKind)
}

func TestUnlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	unlocked, err := f.library.IsUnlocked(ctx, 10)
	require.NoError(t, err)
	assert.False(t, unlocked)

	unlock, err := f.library.Unlock(ctx, 10, "")
	require.NoError(t, err)
	assert.Equal(t, core.ID(10), unlock.TemplateId)
	assert.Equal(t, "wallet-tx-Tenant Complaint Letter", unlock.Reference)
	assert.InDelta(t, 0.001, unlock.Amount, 1e-12)
	assert.Equal(t, core.IDFromContent("10:wallet-tx-Tenant Complaint Letter"), unlock.Id)
	require.Len(t, f.gateway.requests, 1)
	assert.InDelta(t, 0.001, f.gateway.requests[0].Amount, 1e-12)

	unlocked, err = f.library.IsUnlocked(ctx, 10)
	require.NoError(t, err)
	assert.True(t, unlocked)

	// Unlocking also saves the template
	saved, err := f.library.Saved(ctx)
	require.NoError(t, err)
	require.Len(t, saved.Templates, 1)
	assert.Equal(t, core.ID(10), saved.Templates[0].Id)

	// A second unlock does not charge again
	again, err := f.library.Unlock(ctx, 10, "")
	require.NoError(t, err)
	assert.Equal(t, unlock.Id, again.Id)
	assert.Equal(t, 1, f.gateway.calls)
}

func TestIsTemplateUnlocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Entries are judged as given, without a content lookup
	unlocked, err := f.library.IsTemplateUnlocked(ctx, &core.TemplateEntry{Id: 99, Title: "Unstored Free"})
	require.NoError(t, err)
	assert.True(t, unlocked)

	unlocked, err = f.library.IsTemplateUnlocked(ctx, &core.TemplateEntry{Id: 99, Title: "Unstored Paid", Price: 2})
	require.NoError(t, err)
	assert.False(t, unlocked)

	tmpl, err := f.repos.Content.GetTemplate(ctx, 10)
	require.NoError(t, err)
	unlocked, err = f.library.IsTemplateUnlocked(ctx, tmpl)
	require.NoError(t, err)
	assert.False(t, unlocked)

	_, err = f.library.Unlock(ctx, 10, "")
	require.NoError(t, err)
	unlocked, err = f.library.IsTemplateUnlocked(ctx, tmpl)
	require.NoError(t, err)
	assert.True(t, unlocked)

	_, err = f.library.IsTemplateUnlocked(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnlock_FreeTemplate(t *testing.T) {
	f := newFixture(t)

	_, err := f.library.Unlock(context.Background(), 11, "tx")
	assert.ErrorIs(t, err, ErrNotPremium)
	assert.Equal(t, 0, f.gateway.calls)

	unlocked, err := f.library.IsUnlocked(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestUnlock_PremiumFlagWithoutPrice(t *testing.T) {
	f := newFixture(t)

	_, err := f.library.Unlock(context.Background(), 12, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.gateway.calls)
}

func TestUnlock_PaymentFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gateway.err = errors.New("user rejected transaction")

	_, err := f.library.Unlock(ctx, 10, "")
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Contains(t, err.Error(), "user rejected transaction")

	unlocked, err := f.library.IsUnlocked(ctx, 10)
	require.NoError(t, err)
	assert.False(t, unlocked)

	saved, err := f.library.Saved(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved.Templates)
}

func TestUnlock_UnknownTemplate(t *testing.T) {
	f := newFixture(t)
	_, err := f.library.Unlock(context.Background(), 404, "tx")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	download, err := f.library.Export(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "Repair_Request_Notice.txt", download.Filename)
	assert.Equal(t, "Please repair", download.Content)

	_, err = f.library.Export(ctx, 10)
	assert.ErrorIs(t, err, ErrTemplateLocked)

	_, err = f.library.Unlock(ctx, 10, "")
	require.NoError(t, err)

	download, err = f.library.Export(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Tenant_Complaint_Letter.txt", download.Filename)
	assert.Equal(t, "Dear landlord", download.Content)

	_, err = f.library.Export(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "FMLA_Request.txt", Filename("FMLA Request"))
	assert.Equal(t, "A_B.txt", Filename("A \t\n B"))
	assert.Equal(t, "Single.txt", Filename("Single"))

	t.Run("path separators", func(t *testing.T) {
		dir := t.TempDir()
		for _, title := range []string{"../../etc/passwd", `..\..\boot.ini`, "Repair / Deduct", "..", "/", ""} {
			name := Filename(title)
			assert.NotContains(t, name, "/", title)
			assert.NotContains(t, name, `\`, title)
			assert.False(t, strings.HasPrefix(name, "."), title)
			assert.Equal(t, dir, filepath.Dir(filepath.Join(dir, name)), title)
		}
		assert.Equal(t, "_.._etc_passwd.txt", Filename("../../etc/passwd"))
		assert.Equal(t, "Repair_Deduct.txt", Filename("Repair / Deduct"))
		assert.Equal(t, "template.txt", Filename(".."))
	})
}

func TestManualGateway(t *testing.T) {
	_, err := ManualGateway{}.CreateSession(context.Background(), PaymentRequest{Reference: "  "})
	assert.ErrorIs(t, err, ErrReferenceRequired)

	receipt, err := ManualGateway{}.CreateSession(context.Background(), PaymentRequest{Reference: " 0xabc ", Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", receipt.Reference)
	assert.InDelta(t, 2.0, receipt.Amount, 1e-9)
}

func TestUnlock_ManualGatewayRequiresReference(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	_, err = repos.Content.AddTemplates(ctx, &core.TemplateEntry{Id: 1, Title: "Paid", Price: 1})
	require.NoError(t, err)

	lib, err := NewLibrary(repos.Content, repos.Library, repos.Unlocks, WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	_, err = lib.Unlock(ctx, 1, "")
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.ErrorIs(t, err, ErrReferenceRequired)

	unlock, err := lib.Unlock(ctx, 1, "tx-123")
	require.NoError(t, err)
	assert.Equal(t, "tx-123", unlock.Reference)
}

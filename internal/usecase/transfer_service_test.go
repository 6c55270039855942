package usecase

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

func newTestTransfers(t *testing.T, gw *fakeGateway) (*TransferService, Session) {
	t.Helper()

	gw.bootstrapRaw = sampleBootstrapJSON(t)
	refData := newTestRefData(t, gw)
	players := NewPlayerService(refData)
	gameweeks := NewGameweekService(refData)
	gameweeks.now = func() time.Time {
		return time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	}

	service := NewTransferService(refData, players, gameweeks, logging.NewNop())
	return service, Session{Gateway: gw, EntryID: 42}
}

func TestExecute_PricesAndPostsBatch(t *testing.T) {
	gw := &fakeGateway{
		myTeam: MyTeam{
			Picks: []Pick{
				{Element: 301, Position: 7, SellingPrice: 125, PurchasePrice: 120},
				{Element: 604, Position: 1, SellingPrice: 55, PurchasePrice: 55},
			},
		},
		transferResp: `{"status":"ok"}`,
	}
	service, sess := newTestTransfers(t, gw)

	receipt, err := service.Execute(t.Context(), sess, []string{"Salah"}, []string{"Haaland"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if receipt.Gameweek != 7 {
		t.Fatalf("expected GW7 batch, got %d", receipt.Gameweek)
	}
	if len(receipt.Moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(receipt.Moves))
	}
	move := receipt.Moves[0]
	if move.Out.ID != 301 || move.In.ID != 503 {
		t.Fatalf("unexpected move %+v", move)
	}
	if move.SellingPrice != 125 || move.PurchasePrice != 145 {
		t.Fatalf("unexpected pricing %+v", move)
	}
	if receipt.Response != `{"status":"ok"}` {
		t.Fatalf("upstream response not carried: %q", receipt.Response)
	}

	payload := gw.lastTransfer
	if payload.Entry != 42 || payload.Event != 7 {
		t.Fatalf("unexpected payload header %+v", payload)
	}
	if len(payload.Transfers) != 1 {
		t.Fatalf("expected 1 wire item, got %d", len(payload.Transfers))
	}
	item := payload.Transfers[0]
	if item.ElementOut != 301 || item.ElementIn != 503 || item.SellingPrice != 125 || item.PurchasePrice != 145 {
		t.Fatalf("unexpected wire item %+v", item)
	}
}

func TestExecute_RejectsUnownedOutgoingPlayer(t *testing.T) {
	gw := &fakeGateway{
		myTeam: MyTeam{Picks: []Pick{{Element: 604, SellingPrice: 55}}},
	}
	service, sess := newTestTransfers(t, gw)

	_, err := service.Execute(t.Context(), sess, []string{"Salah"}, []string{"Haaland"})
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gw.lastTransfer.Entry != 0 {
		t.Fatal("rejected batch must not reach the gateway")
	}
}

func TestExecute_RejectsLengthMismatch(t *testing.T) {
	service, sess := newTestTransfers(t, &fakeGateway{})

	_, err := service.Execute(t.Context(), sess, []string{"Salah"}, []string{"Haaland", "Gomez"})
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExecute_RejectsEmptyBatch(t *testing.T) {
	service, sess := newTestTransfers(t, &fakeGateway{})

	_, err := service.Execute(t.Context(), sess, nil, nil)
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExecute_AmbiguousNameAborts(t *testing.T) {
	gw := &fakeGateway{
		myTeam: MyTeam{Picks: []Pick{{Element: 301, SellingPrice: 125}}},
	}
	gw.bootstrapRaw = sampleBootstrapJSON(t, twoSilvas)
	refData := newTestRefData(t, gw)
	gameweeks := NewGameweekService(refData)
	gameweeks.now = func() time.Time {
		return time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	}
	service := NewTransferService(refData, NewPlayerService(refData), gameweeks, logging.NewNop())

	_, err := service.Execute(t.Context(), Session{Gateway: gw, EntryID: 42}, []string{"Salah"}, []string{"Silva"})
	if !stderrors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if gw.lastTransfer.Entry != 0 {
		t.Fatal("ambiguous batch must not reach the gateway")
	}
}

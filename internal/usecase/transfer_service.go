package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

// TransferMove is one resolved, priced swap ready for execution.
type TransferMove struct {
	Out           refdata.Player
	In            refdata.Player
	SellingPrice  int
	PurchasePrice int
}

// TransferReceipt reports an executed transfer batch.
type TransferReceipt struct {
	Gameweek int
	Moves    []TransferMove
	Response string
}

// TransferService resolves names, prices the swaps, and executes them.
// Execution is irreversible upstream; every precondition is checked before
// the POST goes out.
type TransferService struct {
	refData  *RefDataService
	players  *PlayerService
	gameweek *GameweekService
	logger   *logging.Logger
}

func NewTransferService(refData *RefDataService, players *PlayerService, gameweek *GameweekService, logger *logging.Logger) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TransferService{refData: refData, players: players, gameweek: gameweek, logger: logger}
}

// Execute swaps the named players out for the named players in. Every name
// must resolve unambiguously, every outgoing player must be owned, and the
// batch targets the gameweek currently open for transfers.
func (s *TransferService) Execute(ctx context.Context, sess Session, namesOut, namesIn []string) (TransferReceipt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Execute")
	defer span.End()

	if len(namesOut) == 0 {
		return TransferReceipt{}, fmt.Errorf("%w: no transfers requested", ErrInvalidInput)
	}
	if len(namesOut) != len(namesIn) {
		return TransferReceipt{}, fmt.Errorf("%w: players out (%d) must match players in (%d)", ErrInvalidInput, len(namesOut), len(namesIn))
	}

	playersOut := make([]refdata.Player, len(namesOut))
	playersIn := make([]refdata.Player, len(namesIn))
	for i, name := range namesOut {
		p, err := s.players.MustResolve(ctx, name)
		if err != nil {
			return TransferReceipt{}, fmt.Errorf("resolve outgoing %q: %w", name, err)
		}
		playersOut[i] = p
	}
	for i, name := range namesIn {
		p, err := s.players.MustResolve(ctx, name)
		if err != nil {
			return TransferReceipt{}, fmt.Errorf("resolve incoming %q: %w", name, err)
		}
		playersIn[i] = p
	}

	current, err := s.gameweek.Current(ctx)
	if err != nil {
		return TransferReceipt{}, err
	}

	team, err := sess.Gateway.MyTeam(ctx, sess.EntryID)
	if err != nil {
		return TransferReceipt{}, fmt.Errorf("fetch squad: %w", err)
	}
	sellingPrices := make(map[int]int, len(team.Picks))
	for _, pick := range team.Picks {
		sellingPrices[pick.Element] = pick.SellingPrice
	}

	receipt := TransferReceipt{Gameweek: current.Event.ID}
	payload := TransferPayload{
		Entry:     sess.EntryID,
		Event:     current.Event.ID,
		Transfers: make([]TransferItem, 0, len(playersOut)),
	}
	for i := range playersOut {
		selling, owned := sellingPrices[playersOut[i].ID]
		if !owned {
			return TransferReceipt{}, fmt.Errorf("%w: you do not own %s", ErrInvalidInput, playersOut[i].WebName)
		}

		move := TransferMove{
			Out:           playersOut[i],
			In:            playersIn[i],
			SellingPrice:  selling,
			PurchasePrice: playersIn[i].NowCost,
		}
		receipt.Moves = append(receipt.Moves, move)
		payload.Transfers = append(payload.Transfers, TransferItem{
			ElementOut:    move.Out.ID,
			ElementIn:     move.In.ID,
			SellingPrice:  move.SellingPrice,
			PurchasePrice: move.PurchasePrice,
		})
	}

	response, err := sess.Gateway.ExecuteTransfers(ctx, payload)
	if err != nil {
		return TransferReceipt{}, fmt.Errorf("execute transfers: %w", err)
	}
	receipt.Response = response

	s.logger.InfoContext(ctx, "transfers executed",
		"entry_id", sess.EntryID,
		"gameweek", receipt.Gameweek,
		"moves", len(receipt.Moves))
	return receipt, nil
}

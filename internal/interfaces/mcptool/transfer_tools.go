package mcptool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type makeTransfersArgs struct {
	PlayersOut []string `json:"players_out" jsonschema:"Names of players to transfer out (required)"`
	PlayersIn  []string `json:"players_in" jsonschema:"Names of players to bring in, same order and length as players_out (required)"`
}

func (s *Server) registerTransferTools() {
	addTool(s, &mcp.Tool{
		Name:        "make_transfers",
		Description: "Execute transfers for the logged-in manager. Irreversible: confirm with the user first",
	}, func(ctx context.Context, args makeTransfersArgs) (string, error) {
		sess, err := s.session()
		if err != nil {
			return "", err
		}

		receipt, err := s.services.Transfers.Execute(ctx, sess, args.PlayersOut, args.PlayersIn)
		if err != nil {
			return "", err
		}

		r := newReport().heading("Transfers executed")
		r.linef("Gameweek %d:", receipt.Gameweek)
		for _, move := range receipt.Moves {
			r.bulletf("OUT %s (sold %s) → IN %s (bought %s)",
				move.Out.WebName, price(move.SellingPrice), move.In.WebName, price(move.PurchasePrice))
		}
		if receipt.Response != "" {
			r.blank().linef("Upstream response: %s", receipt.Response)
		}
		return r.String(), nil
	})
}

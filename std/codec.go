package std

import (
	amino "github.com/tendermint/go-amino"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/x/bounty"
	"github.com/recpm-network/recpm/x/distribution"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/vote"
)

// cdc knows every message this application routes, so a transaction can be
// serialized with the message kept behind the interface.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*recpm.Msg)(nil), nil)

	cdc.RegisterConcrete(&token.SendMsg{}, "recpm/token/send", nil)
	cdc.RegisterConcrete(&token.ApproveMsg{}, "recpm/token/approve", nil)
	cdc.RegisterConcrete(&token.TransferFromMsg{}, "recpm/token/transferfrom", nil)
	cdc.RegisterConcrete(&token.BurnMsg{}, "recpm/token/burn", nil)

	cdc.RegisterConcrete(&vote.RegisterProjectMsg{}, "recpm/vote/register", nil)
	cdc.RegisterConcrete(&vote.VoteMsg{}, "recpm/vote/cast", nil)

	cdc.RegisterConcrete(&distribution.DistributeVotesMsg{}, "recpm/distribution/votes", nil)
	cdc.RegisterConcrete(&distribution.DistributeTokensMsg{}, "recpm/distribution/tokens", nil)
	cdc.RegisterConcrete(&distribution.SetPageSizeMsg{}, "recpm/distribution/pagesize", nil)

	cdc.RegisterConcrete(&bounty.CreateMsg{}, "recpm/bounty/create", nil)
	cdc.RegisterConcrete(&bounty.FundMsg{}, "recpm/bounty/fund", nil)
	cdc.RegisterConcrete(&bounty.ClaimMsg{}, "recpm/bounty/claim", nil)
	cdc.RegisterConcrete(&bounty.AcceptMsg{}, "recpm/bounty/accept", nil)
	cdc.RegisterConcrete(&bounty.RefundMsg{}, "recpm/bounty/refund", nil)
}

// Tx is the transaction envelope of this application, a single message per
// transaction.
type Tx struct {
	Msg recpm.Msg
}

var _ recpm.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (recpm.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, tx)
}

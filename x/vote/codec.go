package vote

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func (s *Stats) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Stats) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

func (m *RegisterProjectMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RegisterProjectMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *VoteMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *VoteMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

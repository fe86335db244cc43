package game

import "strconv"

// ChannelID - идентификатор чата, в котором идет игра
type ChannelID int64

func (id ChannelID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// State - игровое состояние одного чата
type State struct {
	MessageCount uint64 `cbor:"1,keyasint"`
}

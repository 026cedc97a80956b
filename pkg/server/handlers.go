package server

import (
	"Everest/handler"
)

type Handlers struct {
	Receipt *handler.Receipt
	Reward  *handler.Reward
	Staff   *handler.Staff
	Member  *handler.Member
}

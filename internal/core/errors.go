package core

import "errors"

var (
	ErrDuplicateMember = errors.New("member with this nickname is already in the room")
	ErrMemberNotFound  = errors.New("member is not in the room")
	ErrAlreadyJoined   = errors.New("room already joined")
)

package game

import "errors"

var (
	ErrAlreadyInRoom  = errors.New("already in the room")
	ErrNotInRoom      = errors.New("not a member of the room")
	ErrRoomNotEmpty   = errors.New("room already has members")
	ErrRoomNotReady   = errors.New("room is not ready")
	ErrGameInProgress = errors.New("a game is already in progress")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCardNotInHand  = errors.New("card is not in your hand")
	ErrBiddingNotOpen = errors.New("trump bidding is not open")
	ErrBiddingClosed  = errors.New("no further folds are allowed")
	ErrSuitNotAllowed = errors.New("only the current trump suit can be accepted in the first round")
	ErrNotPlaying     = errors.New("cards can only be played once trump is set")
)

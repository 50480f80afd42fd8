package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/minaorangina/clab/deck"
	"github.com/minaorangina/clab/protocol"
)

// Player is a member's seat at the table
type Player struct {
	ID          string
	IsActive    bool
	CardsInHand []deck.Card
	// Purchase is dealt with the hand but withheld until trump is set
	Purchase []deck.Card
	Folds    int
}

// Notification is a message addressed to one member of a room
type Notification struct {
	To      string
	Message protocol.OutboundMessage
}

// Room is one game instance. Every exported method locks the room, so
// commands from different connections never interleave mid-mutation.
type Room struct {
	mu sync.Mutex

	id      string
	state   State
	members []string // join order, also the turn order
	players map[string]*Player

	deck                deck.Deck
	cardsOnTable        []deck.Card
	trumpCard           *deck.Card
	activePlayerID      string
	firstFolder         string
	biddingClosed       bool
	selectedTrumpPlayer string

	trickHook TrickHook
}

// NewRoom constructs an empty room
func NewRoom(id string, opts ...Option) *Room {
	r := &Room{
		id:        id,
		state:     Open,
		members:   []string{},
		players:   map[string]*Player{},
		trickHook: NopHooks{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Members returns the member ids in join order
func (r *Room) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.members...)
}

// Player returns a copy of a member's seat
func (r *Room) Player(id string) (Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	cp := *p
	cp.CardsInHand = append([]deck.Card{}, p.CardsInHand...)
	cp.Purchase = append([]deck.Card{}, p.Purchase...)
	return cp, true
}

// Create seats the room's creator
func (r *Room) Create(clientID string) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.members) > 0 {
		return nil, ErrRoomNotEmpty
	}
	r.addMember(clientID)

	return []Notification{
		{To: clientID, Message: r.buildRoomMessage(protocol.NewRoomCreated)},
	}, nil
}

// Join adds a member and tells everyone already seated
func (r *Room) Join(clientID string) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isMember(clientID) {
		return nil, ErrAlreadyInRoom
	}
	if r.state.InGame() {
		return nil, ErrGameInProgress
	}
	r.addMember(clientID)

	msgs := []Notification{
		{To: clientID, Message: r.buildRoomMessage(protocol.YouConnectedToRoom)},
	}
	for _, id := range r.members {
		if id != clientID {
			msgs = append(msgs, Notification{To: id, Message: r.buildRoomMessage(protocol.ToYourRoomConnected)})
		}
	}

	return msgs, nil
}

// Leave removes a member. A game in progress cannot continue without the
// member's cards, so it is abandoned and the room goes back to the lobby.
// The returned State is the one the room was in before the member left.
func (r *Room) Leave(clientID string) ([]Notification, State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.state
	if !r.isMember(clientID) {
		return nil, prev, ErrNotInRoom
	}

	for i, id := range r.members {
		if id == clientID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	delete(r.players, clientID)

	if prev.InGame() {
		r.resetGame()
	}
	r.state = Open
	if r.isAllPlayersReady() {
		r.state = Ready
	}

	msgs := []Notification{}
	for _, id := range r.members {
		msgs = append(msgs, Notification{To: id, Message: r.buildRoomMessage(protocol.PlayerDisconnected)})
	}

	return msgs, prev, nil
}

// Deal starts a game: a fresh deck, a provisional trump card, a random first
// player, and a hand plus a withheld purchase for every member.
// Dealing again during a game starts a new one.
func (r *Room) Deal(clientID string) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMember(clientID) {
		return nil, ErrNotInRoom
	}
	if !r.isAllPlayersReady() {
		return nil, ErrRoomNotReady
	}

	n := len(r.members)
	if need := cardsNeeded(n); need > deck.Size {
		return nil, fmt.Errorf("%w: %d players need %d cards", deck.ErrInsufficientCards, n, need)
	}

	r.state = Dealing
	r.resetGame()

	d := deck.New()
	trump, err := d.Draw(trumpCardSize)
	if err != nil {
		return nil, err
	}
	r.trumpCard = &trump[0]

	for _, id := range r.members {
		p := r.players[id]
		if p.CardsInHand, err = d.Draw(handSize); err != nil {
			return nil, err
		}
		if p.Purchase, err = d.Draw(purchaseSize); err != nil {
			return nil, err
		}
	}
	r.deck = d
	r.cardsOnTable = []deck.Card{}
	r.setActive(r.members[rand.Intn(n)])
	r.state = FirstBidRound

	msgs := []Notification{}
	for _, id := range r.members {
		msgs = append(msgs, Notification{To: id, Message: r.buildCardsMessage(id)})
	}

	return msgs, nil
}

// Fold declines the current trump.
// In the first round the active member folds and the turn passes on.
// In the second round only the member who folded first may fold again,
// after which no more folds are accepted.
func (r *Room) Fold(clientID string) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMember(clientID) {
		return nil, ErrNotInRoom
	}
	if !r.state.Bidding() {
		return nil, ErrBiddingNotOpen
	}

	if r.state == FirstBidRound {
		if clientID != r.activePlayerID {
			return nil, ErrNotYourTurn
		}
		r.firstFolder = clientID
		r.state = SecondBidRound
	} else {
		if r.biddingClosed {
			return nil, ErrBiddingClosed
		}
		if clientID != r.firstFolder {
			return nil, ErrNotYourTurn
		}
		r.biddingClosed = true
	}

	folder := r.players[clientID]
	folder.Folds++
	r.setActive(r.firstOtherMember(clientID))

	msgs := []Notification{}
	for _, id := range r.members {
		msgs = append(msgs, Notification{To: id, Message: r.buildFoldMessage(folder, id)})
	}

	return msgs, nil
}

// SetTrump finalizes the trump suit and hands every member their purchase.
// In the first round this is the active member accepting the provisional
// suit; in the second round any member may choose any suit.
func (r *Room) SetTrump(clientID string, suit deck.Suit) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMember(clientID) {
		return nil, ErrNotInRoom
	}
	if !r.state.Bidding() {
		return nil, ErrBiddingNotOpen
	}

	// only the second round lets the suit change hands
	if r.state == FirstBidRound {
		if clientID != r.activePlayerID {
			return nil, ErrNotYourTurn
		}
		if suit != r.trumpCard.Suit {
			return nil, ErrSuitNotAllowed
		}
	}

	trump := deck.NewTrumpCard(suit)
	r.trumpCard = &trump
	r.selectedTrumpPlayer = clientID

	for _, id := range r.members {
		p := r.players[id]
		p.CardsInHand = append(p.CardsInHand, p.Purchase...)
		p.Purchase = nil
	}
	r.setActive(clientID)
	r.state = TrickPlay

	msgs := []Notification{}
	for _, id := range r.members {
		msgs = append(msgs, Notification{To: id, Message: r.buildPurchaseMessage(id)})
	}

	return msgs, nil
}

// Play puts a card from the active member's hand on the table. A full table
// is cleared before the card lands. The trick hook sees each full table
// once the room is unlocked, so it may call back into the room.
func (r *Room) Play(clientID string, card deck.Card) ([]Notification, error) {
	msgs, done, err := r.play(clientID, card)
	if err != nil {
		return nil, err
	}
	if done != nil {
		r.trickHook.TrickCompleted(r.id, done.cards, done.trump)
	}
	return msgs, nil
}

type trick struct {
	cards []deck.Card
	trump deck.Card
}

func (r *Room) play(clientID string, card deck.Card) ([]Notification, *trick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMember(clientID) {
		return nil, nil, ErrNotInRoom
	}
	if r.state != TrickPlay {
		return nil, nil, ErrNotPlaying
	}
	if clientID != r.activePlayerID {
		return nil, nil, ErrNotYourTurn
	}

	p := r.players[clientID]
	idx := indexOf(p.CardsInHand, card)
	if idx < 0 {
		return nil, nil, ErrCardNotInHand
	}

	if len(r.cardsOnTable) == len(r.members) {
		r.cardsOnTable = []deck.Card{}
	}
	r.cardsOnTable = append(r.cardsOnTable, card)

	hand := make([]deck.Card, 0, len(p.CardsInHand)-1)
	hand = append(hand, p.CardsInHand[:idx]...)
	p.CardsInHand = append(hand, p.CardsInHand[idx+1:]...)

	r.setActive(r.nextMember(clientID))

	var done *trick
	if len(r.cardsOnTable) == len(r.members) {
		done = &trick{cards: copyCards(r.cardsOnTable), trump: *r.trumpCard}
	}

	msgs := []Notification{
		{To: clientID, Message: r.buildTurnMessage(clientID)},
	}
	for _, id := range r.members {
		if id != clientID {
			msgs = append(msgs, Notification{To: id, Message: r.buildOpponentTurnMessage(id)})
		}
	}

	return msgs, done, nil
}

// Snapshot is a read-only view of a room that reveals no hands
type Snapshot struct {
	RoomID            string      `json:"roomId"`
	State             State       `json:"state"`
	PlayersInTheRoom  int         `json:"playersInTheRoom"`
	IsAllPlayersReady bool        `json:"isAllPlayersReady"`
	TrumpCard         *deck.Card  `json:"trumpCard,omitempty"`
	CardsOnTheTable   []deck.Card `json:"cardsOnTheTable"`
	DeckCount         int         `json:"deckCount"`
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		RoomID:            r.id,
		State:             r.state,
		PlayersInTheRoom:  len(r.members),
		IsAllPlayersReady: r.isAllPlayersReady(),
		CardsOnTheTable:   copyCards(r.cardsOnTable),
		DeckCount:         r.deck.Len(),
	}
	if r.trumpCard != nil {
		trump := *r.trumpCard
		s.TrumpCard = &trump
	}
	return s
}

func (r *Room) addMember(id string) {
	r.members = append(r.members, id)
	r.players[id] = &Player{ID: id}
	if r.state == Open && r.isAllPlayersReady() {
		r.state = Ready
	}
}

func (r *Room) isMember(id string) bool {
	_, ok := r.players[id]
	return ok
}

func (r *Room) isAllPlayersReady() bool {
	return len(r.members) >= minPlayers
}

func (r *Room) resetGame() {
	r.deck = nil
	r.cardsOnTable = nil
	r.trumpCard = nil
	r.activePlayerID = ""
	r.firstFolder = ""
	r.biddingClosed = false
	r.selectedTrumpPlayer = ""
	for _, p := range r.players {
		p.IsActive = false
		p.CardsInHand = nil
		p.Purchase = nil
		p.Folds = 0
	}
}

func (r *Room) setActive(id string) {
	r.activePlayerID = id
	for _, p := range r.players {
		p.IsActive = p.ID == id
	}
}

// firstOtherMember is the first member in join order who isn't id
func (r *Room) firstOtherMember(id string) string {
	for _, m := range r.members {
		if m != id {
			return m
		}
	}
	return ""
}

func (r *Room) nextMember(id string) string {
	for i, m := range r.members {
		if m == id {
			return r.members[(i+1)%len(r.members)]
		}
	}
	return ""
}

func indexOf(cards []deck.Card, card deck.Card) int {
	for i, c := range cards {
		if c == card {
			return i
		}
	}
	return -1
}

func copyCards(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	return out
}

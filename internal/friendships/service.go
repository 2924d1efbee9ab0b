// Package friendships implements the friendship request state machine.
//
// Each ordered pair (from, to) has at most one record moving through
// pending → accepted | rejected; cancel deletes the record. Acceptance is
// the only transition that makes the relationship symmetric.
package friendships

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/entities"
)

var (
	ErrSelfRequest        = errors.New("cannot send a friend request to yourself")
	ErrAlreadyPending     = errors.New("friend request already sent")
	ErrAlreadyFriends     = errors.New("you are already friends")
	ErrPreviouslyRejected = errors.New("a previous request was rejected")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidAction      = errors.New("invalid action")
)

// RelationshipStatus describes how two users relate from the first user's
// point of view.
type RelationshipStatus string

const (
	StatusNone            RelationshipStatus = "none"
	StatusFriends         RelationshipStatus = "friends"
	StatusRequestSent     RelationshipStatus = "request_sent"
	StatusRequestReceived RelationshipStatus = "request_received"
)

// Actions accepted by Respond.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionCancel = "cancel"
)

// Person is a user annotated with their relationship to the viewer, for
// the people listing.
type Person struct {
	User      entities.User      `json:"user"`
	Status    RelationshipStatus `json:"status"`
	RequestID uint               `json:"request_id,omitempty"`
}

// RequestStore defines the friendship request persistence operations.
type RequestStore interface {
	CreateRequest(req *entities.FriendshipRequest) error
	GetRequestByID(id uint) (*entities.FriendshipRequest, error)
	GetRequestByPair(fromID, toID uint) (*entities.FriendshipRequest, error)
	UpdateStatus(id uint, status entities.FriendshipStatus) error
	DeleteRequest(id uint) error
	AcceptedBetween(a, b uint) (bool, error)
	AcceptedForUser(userID uint) ([]entities.FriendshipRequest, error)
	PendingSent(userID uint) ([]entities.FriendshipRequest, error)
	PendingReceived(userID uint) ([]entities.FriendshipRequest, error)
	RequestsInvolving(userID uint) ([]entities.FriendshipRequest, error)
}

// UserStore provides the user lookups the service needs.
type UserStore interface {
	GetUserByID(id uint) (*entities.User, error)
	ListUsers(excludeID uint) ([]entities.User, error)
}

// Service drives the friendship request state machine.
type Service struct {
	requests RequestStore
	users    UserStore
}

// NewService creates a new friendship service.
func NewService(requests RequestStore, users UserStore) *Service {
	return &Service{requests: requests, users: users}
}

func statusError(status entities.FriendshipStatus) error {
	switch status {
	case entities.FriendshipPending:
		return ErrAlreadyPending
	case entities.FriendshipAccepted:
		return ErrAlreadyFriends
	default:
		// Rejected pairs stay blocked; a new request is not created.
		return ErrPreviouslyRejected
	}
}

// SendRequest creates a pending request from one user to another. The
// existence check before the insert is a fast path only; the unique index
// on the ordered pair is authoritative, so a racing duplicate insert is
// re-read and reported from the stored record's status.
func (s *Service) SendRequest(fromID, toID uint) (*entities.FriendshipRequest, error) {
	if fromID == toID {
		return nil, ErrSelfRequest
	}
	if _, err := s.users.GetUserByID(toID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if existing, err := s.requests.GetRequestByPair(fromID, toID); err == nil {
		return nil, statusError(existing.Status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	req := &entities.FriendshipRequest{
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     entities.FriendshipPending,
	}
	if err := s.requests.CreateRequest(req); err != nil {
		if database.IsUniqueViolation(err) {
			existing, gerr := s.requests.GetRequestByPair(fromID, toID)
			if gerr != nil {
				return nil, gerr
			}
			return nil, statusError(existing.Status)
		}
		return nil, err
	}
	return req, nil
}

// Respond applies an action to a request on behalf of responder. Accept
// and reject are for the recipient of a pending request; cancel is for the
// sender and deletes the record. Any mismatch fails without mutating
// anything.
func (s *Service) Respond(requestID, responderID uint, action string) error {
	req, err := s.requests.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	switch action {
	case ActionAccept:
		if req.ToUserID != responderID || req.Status != entities.FriendshipPending {
			return ErrInvalidAction
		}
		return s.requests.UpdateStatus(req.ID, entities.FriendshipAccepted)
	case ActionReject:
		if req.ToUserID != responderID || req.Status != entities.FriendshipPending {
			return ErrInvalidAction
		}
		return s.requests.UpdateStatus(req.ID, entities.FriendshipRejected)
	case ActionCancel:
		if req.FromUserID != responderID {
			return ErrInvalidAction
		}
		return s.requests.DeleteRequest(req.ID)
	default:
		return ErrInvalidAction
	}
}

// AreFriends reports whether an accepted request exists in either
// direction.
func (s *Service) AreFriends(a, b uint) (bool, error) {
	return s.requests.AcceptedBetween(a, b)
}

// FriendsOf returns the counterparties of every accepted request where
// the user is either side.
func (s *Service) FriendsOf(userID uint) ([]entities.User, error) {
	accepted, err := s.requests.AcceptedForUser(userID)
	if err != nil {
		return nil, err
	}
	friends := make([]entities.User, 0, len(accepted))
	for _, req := range accepted {
		if req.FromUserID == userID {
			friends = append(friends, req.ToUser)
		} else {
			friends = append(friends, req.FromUser)
		}
	}
	return friends, nil
}

// RelationshipStatus reports how a relates to b. Friends wins over
// pending requests; a rejected record reports none.
func (s *Service) RelationshipStatus(a, b uint) (RelationshipStatus, error) {
	friends, err := s.requests.AcceptedBetween(a, b)
	if err != nil {
		return StatusNone, err
	}
	if friends {
		return StatusFriends, nil
	}

	if sent, err := s.requests.GetRequestByPair(a, b); err == nil {
		if sent.Status == entities.FriendshipPending {
			return StatusRequestSent, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StatusNone, err
	}

	if received, err := s.requests.GetRequestByPair(b, a); err == nil {
		if received.Status == entities.FriendshipPending {
			return StatusRequestReceived, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StatusNone, err
	}

	return StatusNone, nil
}

// PendingFor returns the user's outgoing and incoming pending requests.
func (s *Service) PendingFor(userID uint) (sent, received []entities.FriendshipRequest, err error) {
	sent, err = s.requests.PendingSent(userID)
	if err != nil {
		return nil, nil, err
	}
	received, err = s.requests.PendingReceived(userID)
	if err != nil {
		return nil, nil, err
	}
	return sent, received, nil
}

// People returns every other user annotated with their relationship to
// the viewer, mirroring RelationshipStatus semantics per entry.
func (s *Service) People(viewerID uint) ([]Person, error) {
	users, err := s.users.ListUsers(viewerID)
	if err != nil {
		return nil, err
	}
	involving, err := s.requests.RequestsInvolving(viewerID)
	if err != nil {
		return nil, err
	}

	friendIDs := make(map[uint]bool)
	sentPending := make(map[uint]uint)     // counterparty → request ID
	receivedPending := make(map[uint]uint) // counterparty → request ID
	for _, req := range involving {
		switch {
		case req.Status == entities.FriendshipAccepted && req.FromUserID == viewerID:
			friendIDs[req.ToUserID] = true
		case req.Status == entities.FriendshipAccepted:
			friendIDs[req.FromUserID] = true
		case req.Status == entities.FriendshipPending && req.FromUserID == viewerID:
			sentPending[req.ToUserID] = req.ID
		case req.Status == entities.FriendshipPending && req.ToUserID == viewerID:
			receivedPending[req.FromUserID] = req.ID
		}
	}

	people := make([]Person, 0, len(users))
	for _, user := range users {
		person := Person{User: user, Status: StatusNone}
		switch {
		case friendIDs[user.ID]:
			person.Status = StatusFriends
		case sentPending[user.ID] != 0:
			person.Status = StatusRequestSent
			person.RequestID = sentPending[user.ID]
		case receivedPending[user.ID] != 0:
			person.Status = StatusRequestReceived
			person.RequestID = receivedPending[user.ID]
		}
		people = append(people, person)
	}
	return people, nil
}

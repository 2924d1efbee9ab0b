package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/friendships"
)

// FriendshipsController handles friend requests and friend listings.
type FriendshipsController struct {
	service *friendships.Service
}

// NewFriendshipsController creates a new FriendshipsController.
func NewFriendshipsController(service *friendships.Service) *FriendshipsController {
	return &FriendshipsController{service: service}
}

type sendRequestBody struct {
	ToUserID uint `json:"to_user_id"`
}

// Send creates a pending friend request from the authenticated user.
func (fc *FriendshipsController) Send(c *gin.Context) {
	var req sendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	request, err := fc.service.SendRequest(GetUserID(c), req.ToUserID)
	if err != nil {
		switch {
		case errors.Is(err, friendships.ErrSelfRequest):
			respondBadRequest(c, err.Error())
		case errors.Is(err, friendships.ErrUserNotFound):
			respondNotFound(c, "user")
		case errors.Is(err, friendships.ErrAlreadyPending),
			errors.Is(err, friendships.ErrAlreadyFriends),
			errors.Is(err, friendships.ErrPreviouslyRejected):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "send friend request")
		}
		return
	}

	respondCreated(c, request)
}

// Respond applies accept, reject or cancel to a request. Authorization
// failures and unknown requests both read as 404 to the caller.
func (fc *FriendshipsController) Respond(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	action := c.Param("action")

	err := fc.service.Respond(requestID, GetUserID(c), action)
	if err != nil {
		switch {
		case errors.Is(err, friendships.ErrRequestNotFound):
			respondNotFound(c, "friend request")
		case errors.Is(err, friendships.ErrInvalidAction):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "respond to friend request")
		}
		return
	}

	respondSuccess(c, "friend request "+action+"ed")
}

// Friends lists the authenticated user's friends.
func (fc *FriendshipsController) Friends(c *gin.Context) {
	friends, err := fc.service.FriendsOf(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list friends")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": friends})
}

// Requests lists the authenticated user's pending requests, both
// directions.
func (fc *FriendshipsController) Requests(c *gin.Context) {
	sent, received, err := fc.service.PendingFor(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list friend requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "received": received})
}

// People lists every other user annotated with their relationship to the
// authenticated user.
func (fc *FriendshipsController) People(c *gin.Context) {
	people, err := fc.service.People(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list people")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": people})
}

// Relationship reports how the authenticated user relates to another user.
func (fc *FriendshipsController) Relationship(c *gin.Context) {
	otherID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := fc.service.RelationshipStatus(GetUserID(c), otherID)
	if err != nil {
		respondInternalError(c, err, "relationship status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

package server

import (
	"github.com/gin-gonic/gin"
)

// Действия, которые проверяет политика доступа
const (
	actionViewStream    = "stream:view"
	actionCreatePost    = "stream:post"
	actionViewComments  = "comments:view"
	actionCreateComment = "comments:post"
	actionViewFriends   = "friends:view"
	actionAddFriend     = "friends:add"
	actionViewProfile   = "profile:view"
	actionEditProfile   = "profile:edit"
)

func APIEndpoints(r *gin.Engine, s *Server) {
	gate := s.Gate

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", s.AuthH.Register)
		auth.POST("/login", s.AuthH.Login)
		auth.POST("/logout", gate.AuthMiddleware(), s.AuthH.Logout)
	}

	// Маршруты с :username доступны только владельцу
	owned := r.Group("/", gate.AuthMiddleware())
	{
		owned.GET("/stream/:username", gate.RequireOwner(actionViewStream), s.StreamH.GetStream)
		owned.POST("/stream/:username", gate.RequireOwner(actionCreatePost), s.StreamH.CreatePost)

		owned.GET("/comments/:username/:postID", gate.RequireOwner(actionViewComments), s.CommentsH.GetComments)
		owned.POST("/comments/:username/:postID", gate.RequireOwner(actionCreateComment), s.CommentsH.CreateComment)

		owned.GET("/friends/:username", gate.RequireOwner(actionViewFriends), s.FriendsH.GetFriends)
		owned.POST("/friends/:username", gate.RequireOwner(actionAddFriend), s.FriendsH.AddFriend)

		owned.GET("/profile/:username", gate.RequireOwner(actionViewProfile), s.ProfileH.GetProfile)
		owned.POST("/profile/:username", gate.RequireOwner(actionEditProfile), s.ProfileH.UpdateProfile)

		owned.GET("/uploads/:filename", s.UploadsH.Serve)
	}

	r.GET("/ws", gate.WSAuthMiddleware(), s.WSH.HandleWebSocket)
}

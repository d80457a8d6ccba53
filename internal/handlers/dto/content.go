package dto

import "time"

type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PostResponse struct {
	ID           uint      `json:"id"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount *int64    `json:"comment_count,omitempty"`
	Author       UserInfo  `json:"author"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Author    UserInfo  `json:"author"`
}

type StreamResponse struct {
	Username string         `json:"username"`
	Posts    []PostResponse `json:"posts"`
}

type CommentsResponse struct {
	Username string            `json:"username"`
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
}

type CreatePostRequest struct {
	Content string `form:"content" binding:"max=5000"`
}

type CreateCommentRequest struct {
	Comment string `json:"comment" form:"comment" binding:"required,max=2000"`
}

type AddFriendRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
}

type FriendsResponse struct {
	Username string     `json:"username"`
	Friends  []UserInfo `json:"friends"`
}

type ProfileRequest struct {
	Education   string `json:"education" form:"education" binding:"max=200"`
	Employment  string `json:"employment" form:"employment" binding:"max=200"`
	Music       string `json:"music" form:"music" binding:"max=200"`
	Movie       string `json:"movie" form:"movie" binding:"max=200"`
	Nationality string `json:"nationality" form:"nationality" binding:"max=200"`
	Birthday    string `json:"birthday" form:"birthday" binding:"max=50"`
}

type ProfileResponse struct {
	UserInfo
	Education   string `json:"education"`
	Employment  string `json:"employment"`
	Music       string `json:"music"`
	Movie       string `json:"movie"`
	Nationality string `json:"nationality"`
	Birthday    string `json:"birthday"`
}

type CreatedResponse struct {
	ID uint `json:"id"`
}

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	UserByNamePrefix   = "user:name:%s"
	PostKeyPrefix      = "post:%d"
	EventKeyPrefix     = "event:%d"
	FriendIDsKeyPrefix = "friends:%d"
	PostCommentsPrefix = "post:%d:comments"
)

const (
	UserTTL         = 5 * time.Minute
	PostTTL         = 30 * time.Minute
	EventTTL        = 10 * time.Minute
	FriendIDsTTL    = 2 * time.Minute
	PostCommentsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserByNameKey(username string) string {
	return fmt.Sprintf(UserByNamePrefix, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func EventKey(eventID uint) string {
	return fmt.Sprintf(EventKeyPrefix, eventID)
}

func FriendIDsKey(userID uint) string {
	return fmt.Sprintf(FriendIDsKeyPrefix, userID)
}

func PostCommentsKey(postID uint) string {
	return fmt.Sprintf(PostCommentsPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint, username string) {
	Invalidate(ctx, UserKey(userID))
	if username != "" {
		Invalidate(ctx, UserByNameKey(username))
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostCommentsKey(postID))
}

func InvalidateEvent(ctx context.Context, eventID uint) {
	Invalidate(ctx, EventKey(eventID))
}

func InvalidateFriends(ctx context.Context, userID uint) {
	Invalidate(ctx, FriendIDsKey(userID))
}

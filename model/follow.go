package model

// Follow is a directed edge: FollowerId's feed includes AuthorId's posts.
type Follow struct {
	FollowerId string `db:"follower_id" json:"followerId"`
	AuthorId   string `db:"author_id" json:"authorId"`
}

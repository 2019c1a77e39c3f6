package model

/*

Post is a single publication document.

Id: primary key, server generated uuid
UserId: CognitoId of the author. Also the hash key of the user-date index
	used by the single user timeline.
Description: free text caption, minimum trimmed length 5
Date: server assigned creation timestamp, RFC3339. Immutable, and the range
	key of the user-date index.
Image: S3 object key of the attached image, resolved to a presigned URL at
	read time only.

Likes: CognitoIds that currently like this post. The like toggle keeps the
	list duplicate free.
Comments: append only comment sequence. The wire name "coments" is kept as
	is, it has been the persisted attribute name since the first deploy and
	every stored document uses it.

*/
type Post struct {
	Id          string    `json:"id" dynamodbav:"id"`
	UserId      string    `json:"userId" dynamodbav:"userId"`
	Description string    `json:"description" dynamodbav:"description"`
	Date        string    `json:"date" dynamodbav:"date"`
	Image       string    `json:"image,omitempty" dynamodbav:"image,omitempty"`
	Likes       []string  `json:"likes" dynamodbav:"likes"`
	Comments    []Comment `json:"coments" dynamodbav:"coments"`
}

// Comment is one entry of a post's comment sequence. UserName is denormalized
// at comment time and is not kept in sync with later display name changes.
type Comment struct {
	UserId   string `json:"userId" dynamodbav:"userId"`
	UserName string `json:"userName" dynamodbav:"userName"`
	Date     string `json:"date" dynamodbav:"date"`
	Coment   string `json:"coment" dynamodbav:"coment"`
}

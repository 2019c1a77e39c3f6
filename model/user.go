package model

/*

User is the profile document for a registered account, keyed by the
identity provider subject id.

CognitoId: primary key, the Cognito subject id assigned at sign up. Immutable.
Name: display name, editable through profile update
Email: login email, set at registration
Avatar: S3 object key of the avatar image. Stored as an opaque key and only
	resolved to a presigned URL at read time, never persisted as a URL.

Following: ordered list of CognitoIds this user follows. The follow toggle
	keeps it duplicate free.
Followers: denormalized count of inbound follows. Updated by the follow
	toggle on the other user's record, so it can drift from the ground truth
	under concurrent or partially failed toggles.
Posts: denormalized count of publications, incremented on post creation.

*/
type User struct {
	CognitoId string   `json:"cognitoId" dynamodbav:"cognitoId"`
	Name      string   `json:"name" dynamodbav:"name"`
	Email     string   `json:"email" dynamodbav:"email"`
	Avatar    string   `json:"avatar,omitempty" dynamodbav:"avatar,omitempty"`
	Following []string `json:"following" dynamodbav:"following"`
	Followers int      `json:"followers" dynamodbav:"followers"`
	Posts     int      `json:"posts" dynamodbav:"posts"`
}

// NewUser returns a fresh profile with zeroed counters, created right after
// the email confirmation step.
func NewUser(cognitoId, name, email string) *User {
	return &User{
		CognitoId: cognitoId,
		Name:      name,
		Email:     email,
		Following: []string{},
		Followers: 0,
		Posts:     0,
	}
}

package entity

// Owner is the site administrator account.
type Owner struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}

// OwnerSignup is the body accepted by POST /signup.
type OwnerSignup struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginForm is the form-encoded body accepted by POST /login.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// AccessToken is returned by a successful login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

/*
Schema:

CREATE TABLE owners (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	hashed_password VARCHAR(255) NOT NULL
);

CREATE UNIQUE INDEX ix_owners_username ON owners(username);
CREATE UNIQUE INDEX ix_owners_email ON owners(email);
*/

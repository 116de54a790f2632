package entity

// ContactInfo holds the owner's public contact links.
type ContactInfo struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	XLink        string `json:"x_link"`
	LinkedinLink string `json:"linkedin_link"`
}

// ContactInfoInput carries every mutable contact field.
type ContactInfoInput struct {
	Email        string `json:"email" validate:"required,email"`
	XLink        string `json:"x_link" validate:"required"`
	LinkedinLink string `json:"linkedin_link" validate:"required"`
}

/*
Schema:

CREATE TABLE contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email VARCHAR(255),
	x_link VARCHAR(255),
	linkedin_link VARCHAR(255)
);

CREATE INDEX ix_contacts_email ON contacts(email);
*/

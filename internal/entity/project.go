package entity

// Project is a portfolio entry linking to external work.
type Project struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectLink string `json:"project_link"`
}

// ProjectInput carries every mutable project field.
type ProjectInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	ProjectLink string `json:"project_link" validate:"required"`
}

/*
Schema:

CREATE TABLE projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title VARCHAR(255),
	description VARCHAR(255),
	project_link VARCHAR(255)
);
*/

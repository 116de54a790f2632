package entity

// Blog is a post; Published is 0 for drafts and 1 once live.
type Blog struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Published int    `json:"published"`
}

// BlogInput carries every mutable blog field. Published defaults to 0 when omitted.
type BlogInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Published int    `json:"published"`
}

/*
Schema:

CREATE TABLE blog_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title VARCHAR(255),
	content TEXT,
	author VARCHAR(255),
	published INTEGER
);
*/

package repository

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-service/internal/entity"
)

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db}
}

func (r *BlogRepository) CreateBlog(ctx context.Context, in entity.BlogInput) (*entity.Blog, error) {
	query := `INSERT INTO blog_posts (title, content, author, published) VALUES (?, ?, ?, ?)`

	blog := &entity.Blog{Title: in.Title, Content: in.Content, Author: in.Author, Published: in.Published}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, in.Title, in.Content, in.Author, in.Published)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		blog.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return blog, nil
}

func (r *BlogRepository) GetBlogs(ctx context.Context) ([]*entity.Blog, error) {
	query := `SELECT id, title, content, author, published FROM blog_posts ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []*entity.Blog{}
	for rows.Next() {
		blog := &entity.Blog{}
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Author, &blog.Published); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (r *BlogRepository) GetBlogByID(ctx context.Context, id int) (*entity.Blog, error) {
	return getBlog(ctx, r.db, id)
}

func (r *BlogRepository) UpdateBlog(ctx context.Context, id int, in entity.BlogInput) (*entity.Blog, error) {
	query := `UPDATE blog_posts SET title = ?, content = ?, author = ?, published = ? WHERE id = ?`

	var blog *entity.Blog
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getBlog(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, in.Title, in.Content, in.Author, in.Published, id); err != nil {
			return err
		}
		existing.Title = in.Title
		existing.Content = in.Content
		existing.Author = in.Author
		existing.Published = in.Published
		blog = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return blog, nil
}

func (r *BlogRepository) DeleteBlog(ctx context.Context, id int) (*entity.Blog, error) {
	var blog *entity.Blog
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getBlog(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id); err != nil {
			return err
		}
		blog = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return blog, nil
}

func (r *BlogRepository) DeleteAllBlogs(ctx context.Context) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM blog_posts`)
		return err
	})
}

func getBlog(ctx context.Context, q queryer, id int) (*entity.Blog, error) {
	query := `SELECT id, title, content, author, published FROM blog_posts WHERE id = ?`

	blog := &entity.Blog{}
	err := q.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Author, &blog.Published)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return blog, nil
}

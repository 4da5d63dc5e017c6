package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	authorModel "library-backend/internal/domains/author/model"
	"library-backend/internal/domains/book/model"
)

// Expected column order of the import sheet. The first row is a header.
// Title, Author, Genre and PublishDate are required; ISBN, Description
// and TotalCopies are optional (TotalCopies defaults to 1).
const (
	colTitle = iota
	colAuthor
	colGenre
	colPublishDate
	colISBN
	colDescription
	colTotalCopies
)

// Import creates one book per xlsx row. Authors are matched by full
// name and created when missing. Bad rows are reported but do not stop
// the rest of the file.
func (s *bookService) Import(ctx context.Context, r io.Reader) (*model.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	result := &model.ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		rowNum := i + 1
		if err := s.importRow(ctx, row); err != nil {
			result.Errors = append(result.Errors, model.ImportError{
				Row:     rowNum,
				Message: err.Error(),
			})
			continue
		}
		result.Created++
	}

	return result, nil
}

func (s *bookService) importRow(ctx context.Context, row []string) error {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	title := cell(colTitle)
	authorName := cell(colAuthor)
	genre := cell(colGenre)
	publishDate := cell(colPublishDate)

	if title == "" {
		return fmt.Errorf("title is required")
	}
	if authorName == "" {
		return fmt.Errorf("author is required")
	}
	if genre == "" {
		return fmt.Errorf("genre is required")
	}
	if publishDate == "" {
		return fmt.Errorf("publishDate is required")
	}
	if _, err := time.Parse("2006-01-02", publishDate); err != nil {
		return fmt.Errorf("publishDate must be YYYY-MM-DD")
	}

	totalCopies := 1
	if raw := cell(colTotalCopies); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("totalCopies must be a positive integer")
		}
		totalCopies = n
	}

	author, err := s.resolveAuthor(ctx, authorName)
	if err != nil {
		return err
	}

	book := &model.Book{
		ID:              uuid.NewString(),
		Title:           title,
		AuthorID:        author.ID,
		Genre:           genre,
		PublishDate:     publishDate,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		CreatedAt:       time.Now().UTC(),
	}
	if isbn := cell(colISBN); isbn != "" {
		book.ISBN = &isbn
	}
	if desc := cell(colDescription); desc != "" {
		book.Description = &desc
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// resolveAuthor finds the author by full name, creating a record when
// the name is new to the catalog.
func (s *bookService) resolveAuthor(ctx context.Context, name string) (*authorModel.Author, error) {
	if a, err := s.authors.FindByFullName(ctx, name); err == nil {
		return a, nil
	}

	first, last := splitName(name)
	author := &authorModel.Author{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author %q: %w", name, err)
	}
	return author, nil
}

func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 1 {
		return "", fields[0]
	}
	return fields[0], strings.Join(fields[1:], " ")
}

package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToCommentItem(comment domain.Comment) dto.CommentItem {
	return dto.CommentItem{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(TimestampLayout),
		UpdatedAt: comment.UpdatedAt.Format(TimestampLayout),
	}
}

func ToCommentItems(comments []domain.Comment) []dto.CommentItem {
	items := make([]dto.CommentItem, 0, len(comments))
	for _, comment := range comments {
		items = append(items, ToCommentItem(comment))
	}
	return items
}

func FromCommentItem(item dto.CommentItem) (domain.Comment, error) {
	comment := domain.Comment{
		ID:      item.ID,
		TaskID:  item.TaskID,
		Author:  item.Author,
		Content: item.Content,
	}

	var err error
	if comment.CreatedAt, err = time.Parse(TimestampLayout, item.CreatedAt); err != nil {
		return domain.Comment{}, err
	}
	if comment.UpdatedAt, err = time.Parse(TimestampLayout, item.UpdatedAt); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func FromCommentItems(items []dto.CommentItem) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0, len(items))
	for _, item := range items {
		comment, err := FromCommentItem(item)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func ToReportItem(report domain.IssueReport) dto.ReportItem {
	return dto.ReportItem{
		ID:        report.ID,
		TaskID:    report.TaskID,
		Message:   report.Message,
		CreatedAt: report.CreatedAt.Format(TimestampLayout),
	}
}

func ToReportItems(reports []domain.IssueReport) []dto.ReportItem {
	items := make([]dto.ReportItem, 0, len(reports))
	for _, report := range reports {
		items = append(items, ToReportItem(report))
	}
	return items
}

func FromReportItem(item dto.ReportItem) (domain.IssueReport, error) {
	createdAt, err := time.Parse(TimestampLayout, item.CreatedAt)
	if err != nil {
		return domain.IssueReport{}, err
	}
	return domain.IssueReport{
		ID:        item.ID,
		TaskID:    item.TaskID,
		Message:   item.Message,
		CreatedAt: createdAt,
	}, nil
}

func FromReportItems(items []dto.ReportItem) ([]domain.IssueReport, error) {
	reports := make([]domain.IssueReport, 0, len(items))
	for _, item := range items {
		report, err := FromReportItem(item)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func ToEmployeeItems(employees []domain.Employee) []dto.EmployeeItem {
	items := make([]dto.EmployeeItem, 0, len(employees))
	for _, employee := range employees {
		items = append(items, dto.EmployeeItem(employee))
	}
	return items
}

func FromEmployeeItems(items []dto.EmployeeItem) []domain.Employee {
	employees := make([]domain.Employee, 0, len(items))
	for _, item := range items {
		employees = append(employees, domain.Employee(item))
	}
	return employees
}

package projections

import (
	"context"

	studentStorage "campusevents/internal/adapters/storage/student"
	"campusevents/internal/application/listutil"
	"campusevents/internal/domain/student"
)

// StudentSortColumns are the columns the student list may sort by.
var StudentSortColumns = []string{"name", "email", "section"}

// GetStudentListQuery carries the parsed list parameters.
type GetStudentListQuery struct {
	Params listutil.ListParams
}

// GetStudentListResult carries one page of students with pagination metadata.
type GetStudentListResult struct {
	Students []student.Student
	PageInfo listutil.PageInfo
}

// GetStudentListDeps holds dependencies for the student list projection.
type GetStudentListDeps struct {
	StudentStore StudentStore
}

// QueryGetStudentList retrieves one page of students for the admin table.
// PRE: query.Params came from listutil parsing, so sort/dir are sanitised
// POST: PageInfo.Total reflects the filtered count, not the page size
func QueryGetStudentList(ctx context.Context, query GetStudentListQuery, deps GetStudentListDeps) (GetStudentListResult, error) {
	filter := studentStorage.ListFilter{
		Section: query.Params.Filters["section"],
		Search:  query.Params.Search,
		Sort:    query.Params.Sort,
		Dir:     query.Params.Dir,
	}

	total, err := deps.StudentStore.Count(ctx, filter)
	if err != nil {
		return GetStudentListResult{}, err
	}

	pageInfo := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = pageInfo.PerPage
	filter.Offset = pageInfo.Offset()

	students, err := deps.StudentStore.List(ctx, filter)
	if err != nil {
		return GetStudentListResult{}, err
	}

	return GetStudentListResult{Students: students, PageInfo: pageInfo}, nil
}

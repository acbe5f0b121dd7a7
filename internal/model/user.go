package model

// User is a registered user. IDs are dense from 0; user 0 is the
// built-in root user.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Contest groups problems and users under a submission window. Contest 0
// is the synthetic global contest covering every problem and user.
type Contest struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	From            string `json:"from"`
	To              string `json:"to"`
	ProblemIDs      []int  `json:"problem_ids"`
	UserIDs         []int  `json:"user_ids"`
	SubmissionLimit int    `json:"submission_limit"`
}

// HasProblem reports whether the contest contains the problem id.
func (c Contest) HasProblem(id int) bool {
	for _, pid := range c.ProblemIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// HasUser reports whether the contest contains the user id.
func (c Contest) HasUser(id int) bool {
	for _, uid := range c.UserIDs {
		if uid == id {
			return true
		}
	}
	return false
}

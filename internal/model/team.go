package model

import "time"

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTeam(id, name, description string, memberIDs []string) *Team {
	now := time.Now()
	return &Team{
		ID:          id,
		Name:        name,
		Description: description,
		MemberIDs:   memberIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t *Team) UpdateName(name string) {
	t.Name = name
	t.touch()
}

func (t *Team) UpdateDescription(description string) {
	t.Description = description
	t.touch()
}

func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember adds a user to the team. Adding an existing member is a no-op.
func (t *Team) AddMember(userID string) {
	if t.HasMember(userID) {
		return
	}
	t.MemberIDs = append(t.MemberIDs, userID)
	t.touch()
}

func (t *Team) RemoveMember(userID string) {
	for i, id := range t.MemberIDs {
		if id == userID {
			t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
			t.touch()
			return
		}
	}
}

func (t *Team) touch() {
	t.UpdatedAt = time.Now()
}

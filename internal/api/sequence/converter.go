package sequence

import "github.com/futig/outreach-backend/internal/entity"

func toSequenceDTO(s *entity.Sequence) *entity.SequenceDTO {
	messages := s.Messages
	if messages == nil {
		messages = []map[string]any{}
	}

	return &entity.SequenceDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		OrgID:     s.OrgID,
		Name:      s.Name,
		Content:   s.Content,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSequenceDTOs(sequences []*entity.Sequence) []*entity.SequenceDTO {
	dtos := make([]*entity.SequenceDTO, 0, len(sequences))
	for _, s := range sequences {
		dtos = append(dtos, toSequenceDTO(s))
	}
	return dtos
}

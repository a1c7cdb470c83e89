package documents

import (
	"encoding/json"

	apidoc "github.com/DavidAtikpo/irata-sub007/pkg/api/types/documents"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

func ComposeSignature(s *domain.Signature) *apidoc.Signature {
	if s == nil {
		return nil
	}
	return &apidoc.Signature{
		Image:    s.Image.String(),
		SignedAt: rfctime.New(s.SignedAt),
	}
}

func ComposeDetail(d domain.Document) apidoc.Detail {
	// Fields are plain structs of strings and numbers; marshalling them
	// back cannot fail.
	fields, _ := json.Marshal(d.Fields)

	return apidoc.Detail{
		DocumentId:       d.Id,
		Kind:             d.Kind.String(),
		Status:           d.Status.String(),
		OwnerUserId:      d.OwnerUserId,
		SessionId:        d.SessionId,
		Fields:           fields,
		PrimarySignature: ComposeSignature(d.PrimarySignature),
		CounterSignature: ComposeSignature(d.CounterSignature),
		CreatedAt:        rfctime.New(d.CreatedAt),
		UpdatedAt:        rfctime.New(d.UpdatedAt),
	}
}

func ComposeInductionEntry(e domain.InductionEntry) apidoc.InductionEntry {
	return apidoc.InductionEntry{
		Document:      ComposeDetail(e.Document),
		UserHasSigned: e.UserHasSigned,
		UserSignature: ComposeSignature(e.UserSignature),
	}
}

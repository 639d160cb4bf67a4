package directory

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/logging"
)

// Resolver turns assignee identifiers into deliverable email addresses.
// Stage assignees may be stored as member IDs, email addresses, or display
// names, so resolution tries each form against the member directory.
type Resolver struct {
	members interfaces.MemberRepository
}

func New(members interfaces.MemberRepository) *Resolver {
	return &Resolver{members: members}
}

// Emails resolves a set of assignee identifiers to unique lowercase email
// addresses. Identifiers that match no member are skipped with a warning
// rather than failing the whole notification.
func (r *Resolver) Emails(ctx context.Context, identifiers []string) ([]string, error) {
	seen := make(map[string]struct{})
	var emails []string

	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			return
		}
		if _, ok := seen[email]; ok {
			return
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	var byName map[string]string

	for _, ident := range identifiers {
		ident = types.NormalizeIdentifier(ident)
		if ident == "" {
			continue
		}

		// An identifier containing "@" is already an address. It still goes
		// through the directory so stored members win over raw strings.
		if strings.Contains(ident, "@") {
			member, err := r.members.GetByEmail(ctx, ident)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to look up member by email", goerr.V("identifier", ident))
			}
			if member != nil {
				add(member.Email)
			} else {
				add(ident)
			}
			continue
		}

		if member, err := r.members.Get(ctx, types.MemberID(ident)); err == nil && member != nil {
			add(member.Email)
			continue
		}

		if byName == nil {
			all, err := r.members.List(ctx)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to list members")
			}
			byName = make(map[string]string, len(all))
			for _, m := range all {
				byName[strings.ToLower(strings.TrimSpace(m.Name))] = m.Email
			}
		}

		if email, ok := byName[strings.ToLower(ident)]; ok {
			add(email)
			continue
		}

		logging.From(ctx).Warn("assignee identifier did not resolve to a member", "identifier", ident)
	}

	return emails, nil
}

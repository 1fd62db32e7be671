package ownership

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist, or exists under a
// different tenant and the uniform not-found policy hides it. Handlers map it
// to 404 so cross-tenant probes cannot distinguish "absent" from "not yours".
var ErrNotFound = errors.New("record not found")

// ErrForbidden is returned only when the caller themselves named a parent
// record (e.g. the post id on a metric create) that exists under another
// tenant. Reads never return it.
var ErrForbidden = errors.New("forbidden")

// Kind identifies an entity type to the resolver.
type Kind string

const (
	KindSocialAccount    Kind = "social_account"
	KindPost             Kind = "post"
	KindPostMetric       Kind = "post_metric"
	KindCalendarEntry    Kind = "calendar_entry"
	KindHashtagGroup     Kind = "hashtag_group"
	KindAudienceSnapshot Kind = "audience_snapshot"
	KindAIContentIdea    Kind = "ai_content_idea"
)

// Rule describes how a kind resolves to its owning tenant. Direct kinds carry
// tenant_id themselves; indirect kinds follow exactly one parent reference.
type Rule struct {
	Table      string
	Direct     bool
	ParentKind Kind   // set for indirect kinds
	ParentFK   string // column on Table referencing the parent id
}

// rules is the closed resolution table. Adding an entity type means adding a
// row here; nothing in the resolver inspects record shape at runtime.
var rules = map[Kind]Rule{
	KindSocialAccount:    {Table: "social_accounts", Direct: true},
	KindPost:             {Table: "posts", Direct: true},
	KindPostMetric:       {Table: "post_metrics", Direct: false, ParentKind: KindPost, ParentFK: "post_id"},
	KindCalendarEntry:    {Table: "content_calendar_entries", Direct: true},
	KindHashtagGroup:     {Table: "hashtag_groups", Direct: true},
	KindAudienceSnapshot: {Table: "audience_snapshots", Direct: false, ParentKind: KindSocialAccount, ParentFK: "account_id"},
	KindAIContentIdea:    {Table: "ai_content_ideas", Direct: true},
}

// RuleFor returns the resolution rule for a kind.
func RuleFor(kind Kind) (Rule, bool) {
	r, ok := rules[kind]
	return r, ok
}

// Kinds returns every kind the resolver knows about.
func Kinds() []Kind {
	out := make([]Kind, 0, len(rules))
	for k := range rules {
		out = append(out, k)
	}
	return out
}

// Resolver computes the owning tenant of any entity instance.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a resolver bound to a database handle. Pass a
// transaction handle to resolve inside an open transaction.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// WithTx returns a resolver bound to the given transaction.
func (r *Resolver) WithTx(tx *gorm.DB) *Resolver {
	return &Resolver{db: tx}
}

// ResolveOwner returns the tenant that owns the record. Indirect kinds perform
// exactly one parent lookup; a dangling parent reference yields ErrNotFound,
// never a guessed tenant.
func (r *Resolver) ResolveOwner(ctx context.Context, kind Kind, id int64) (string, error) {
	rule, ok := rules[kind]
	if !ok {
		return "", fmt.Errorf("ownership: unknown entity kind %q", kind)
	}

	if rule.Direct {
		var tenantID string
		err := r.db.WithContext(ctx).
			Table(rule.Table).
			Select("tenant_id").
			Where("id = ?", id).
			Take(&tenantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		if err != nil {
			return "", err
		}
		return tenantID, nil
	}

	parentRule := rules[rule.ParentKind]
	var tenantID string
	err := r.db.WithContext(ctx).
		Table(rule.Table).
		Select(parentRule.Table+".tenant_id").
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.%s", parentRule.Table, parentRule.Table, rule.Table, rule.ParentFK)).
		Where(rule.Table+".id = ?", id).
		Take(&tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return tenantID, nil
}

// Authorize reports whether the record identified by (kind, id) is owned by
// tenantID. A missing record (or a dangling parent) is not an error here; it
// simply fails authorization.
func (r *Resolver) Authorize(ctx context.Context, tenantID string, kind Kind, id int64) (bool, error) {
	owner, err := r.ResolveOwner(ctx, kind, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == tenantID, nil
}

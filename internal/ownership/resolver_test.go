package ownership

import (
	"testing"
)

func TestRuleTableCoversAllKinds(t *testing.T) {
	kinds := []Kind{
		KindSocialAccount,
		KindPost,
		KindPostMetric,
		KindCalendarEntry,
		KindHashtagGroup,
		KindAudienceSnapshot,
		KindAIContentIdea,
	}

	for _, kind := range kinds {
		rule, ok := RuleFor(kind)
		if !ok {
			t.Errorf("expected a rule for kind %q", kind)
			continue
		}
		if rule.Table == "" {
			t.Errorf("rule for %q has no table", kind)
		}
	}

	if len(Kinds()) != len(kinds) {
		t.Errorf("expected %d kinds in the rule table, got %d", len(kinds), len(Kinds()))
	}
}

func TestIndirectRulesPointAtDirectParents(t *testing.T) {
	for _, kind := range Kinds() {
		rule, _ := RuleFor(kind)
		if rule.Direct {
			if rule.ParentKind != "" || rule.ParentFK != "" {
				t.Errorf("direct rule for %q must not declare a parent", kind)
			}
			continue
		}

		if rule.ParentKind == "" || rule.ParentFK == "" {
			t.Errorf("indirect rule for %q must declare a parent kind and foreign key", kind)
			continue
		}
		parent, ok := RuleFor(rule.ParentKind)
		if !ok {
			t.Errorf("indirect rule for %q references unknown parent %q", kind, rule.ParentKind)
			continue
		}
		// Ownership resolves in one hop, so a parent must carry tenant_id itself.
		if !parent.Direct {
			t.Errorf("parent %q of %q must be a direct kind", rule.ParentKind, kind)
		}
	}
}

func TestMetricAndSnapshotAreIndirect(t *testing.T) {
	metric, _ := RuleFor(KindPostMetric)
	if metric.Direct || metric.ParentKind != KindPost || metric.ParentFK != "post_id" {
		t.Errorf("post metric must resolve through posts.post_id, got %+v", metric)
	}

	snapshot, _ := RuleFor(KindAudienceSnapshot)
	if snapshot.Direct || snapshot.ParentKind != KindSocialAccount || snapshot.ParentFK != "account_id" {
		t.Errorf("audience snapshot must resolve through social_accounts.account_id, got %+v", snapshot)
	}
}

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userStory() *Story {
	s := StoryFrom("AUserStory")
	return &s
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"A User Story", "a_user_story"},
		{"a user story", "a_user_story"},
		{"a_simple_test_case", "a_simple_test_case"},
		{"A simple test case: exception case", "a_simple_test_case_exception_case"},
		{"  --Leading and trailing--  ", "leading_and_trailing"},
		{"multiple   spaces__and__underscores", "multiple_spaces_and_underscores"},
		{"Café Crème", "cafe_creme"},
		{"TestParse/case_3", "testparse_case_3"},
		{"should_do_this[2]", "should_do_this_2"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestNormalize_When_CaseDiffers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Normalize("A User Story"), Normalize("a user story"))
	assert.Equal(t, Normalize("A USER STORY"), Normalize("a user story"))
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A user story", Humanize("AUserStory"))
	assert.Equal(t, "A simple test case", Humanize("a_simple_test_case"))
	assert.Equal(t, "Html report writer", Humanize("HTMLReportWriter"))
	assert.Equal(t, "Checkout flow", Humanize("example.com/shop/checkout_flow"))
	assert.Equal(t, "A user story", Humanize("net.thucydides.AUserStory"))
	assert.Empty(t, Humanize(""))
}

func TestHumanize_When_PathEndsInMajorVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Foo", Humanize("example.com/foo/v2"))
	assert.Equal(t, "Yaml", Humanize("gopkg.in/yaml.v3"))
	assert.Equal(t, "Payments", Humanize("example.com/payments/v10/"))
	assert.Equal(t, "V2", Humanize("v2"), "a lone version is still a name")
	assert.Equal(t, "Vault", Humanize("example.com/vault"))

	s := StoryFrom("github.com/acme/billing/v3")
	name, err := s.ReportName(HTML, "")
	require.NoError(t, err)
	assert.Equal(t, "billing.html", name)
}

func TestName_When_TestHasStory(t *testing.T) {
	t.Parallel()

	id := Identity{Method: "a_simple_test_case", Story: userStory()}

	name, err := Name(id, "", Bare)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_a_simple_test_case", name)

	name, err = Name(id, "", XML)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_a_simple_test_case.xml", name)
}

func TestName_When_TitleInStory_ReplacesSpaces(t *testing.T) {
	t.Parallel()

	name, err := Name(Identity{Title: "A simple test case", Story: userStory()}, "", XML)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_a_simple_test_case.xml", name)
}

func TestName_When_MethodAndTitle_MethodWins(t *testing.T) {
	t.Parallel()

	id := Identity{Title: "A simple test case: exception case", Method: "a_simple_test_case"}

	name, err := Name(id, "", HTML)
	require.NoError(t, err)
	assert.Equal(t, "a_simple_test_case.html", name)
}

func TestName_When_Qualified(t *testing.T) {
	t.Parallel()

	id := Identity{Method: "should_do_this", Story: userStory()}

	html, err := Name(id, "qualifier", HTML)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_should_do_this_qualifier.html", html)

	xml, err := Name(id, "qualifier", XML)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_should_do_this_qualifier.xml", xml)

	blank, err := Name(id, " :: ", HTML)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_should_do_this.html", blank, "qualifier that normalizes to nothing is dropped")
}

func TestName_When_NoIdentity(t *testing.T) {
	t.Parallel()

	_, err := Name(Identity{}, "", HTML)
	require.ErrorIs(t, err, ErrInvalidIdentity)

	_, err = Name(Identity{Title: "???"}, "", HTML)
	require.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestName_When_OnlyStory(t *testing.T) {
	t.Parallel()

	name, err := Name(Identity{Story: userStory()}, "", JSON)
	require.NoError(t, err)
	assert.Equal(t, "a_user_story.json", name)
}

func TestStory_ReportName(t *testing.T) {
	t.Parallel()

	s := StoryFrom("AUserStory")

	html, err := s.ReportName(HTML, "")
	require.NoError(t, err)
	assert.Equal(t, "a_user_story.html", html)

	xml, err := s.ReportName(XML, "")
	require.NoError(t, err)
	assert.Equal(t, "a_user_story.xml", xml)

	bare, err := s.ReportName(Bare, "")
	require.NoError(t, err)
	assert.Equal(t, "a_user_story", bare)

	qualified, err := s.ReportName(HTML, "Nightly Run")
	require.NoError(t, err)
	assert.Equal(t, "a_user_story_nightly_run.html", qualified)

	_, err = Story{}.ReportName(HTML, "")
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestStory_DisplayTitle_FallsBackToToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Checkout flow", Story{Token: "CheckoutFlow"}.DisplayTitle())
	assert.Equal(t, "Custom", Story{Title: "Custom", Token: "CheckoutFlow"}.DisplayTitle())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": Bare, "none": Bare, "HTML": HTML, "xml": XML, " json ": JSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestIndex_Claim(t *testing.T) {
	t.Parallel()

	idx := NewIndex()
	require.NoError(t, idx.Claim("a_user_story_a.html", "pkg/TestA"))
	require.NoError(t, idx.Claim("a_user_story_a.html", "pkg/TestA"))

	err := idx.Claim("a_user_story_a.html", "pkg/Test_A")
	require.ErrorIs(t, err, ErrCollision)

	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "pkg/TestA", collision.Existing)
	assert.Equal(t, "pkg/Test_A", collision.Incoming)
	assert.Equal(t, []string{"a_user_story_a.html"}, idx.Names())
}

package forms

import (
	"errors"
	"testing"

	"github.com/mbolis/event-intake/model"
	"github.com/stretchr/testify/require"
)

func mustForm(t *testing.T, name string) *FormSchema {
	t.Helper()
	reg, err := Default()
	require.NoError(t, err)
	s, ok := reg.Get(name)
	require.True(t, ok, name)
	return s
}

func hackathonPayload() Payload {
	return Payload{
		"team_name":         "Alpha",
		"leader_name":       "A",
		"leader_email":      "a@x.com",
		"leader_university": "USP",
		"terms":             "on",
		"_hp":               "",
	}
}

func requireRejected(t *testing.T, err error, reason Reason) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	require.Equal(t, reason, verr.Reason)
	return verr
}

func TestValidateHackathonTeam(t *testing.T) {
	s := mustForm(t, "hackathon")

	sub, err := s.Validate(hackathonPayload())
	require.NoError(t, err)

	row := s.BuildRow(sub)
	require.Equal(t, model.Row{
		{Column: "team_name", Value: "Alpha"},
		{Column: "leader_name", Value: "A"},
		{Column: "leader_email", Value: "a@x.com"},
		{Column: "leader_university", Value: "USP"},
		{Column: "member2_name", Value: nil},
		{Column: "member2_email", Value: nil},
		{Column: "member2_university", Value: nil},
		{Column: "member3_name", Value: nil},
		{Column: "member3_email", Value: nil},
		{Column: "member3_university", Value: nil},
		{Column: "terms_accepted", Value: true},
	}, row)
}

func TestValidateHoneypotWins(t *testing.T) {
	s := mustForm(t, "hackathon")
	p := hackathonPayload()
	p["_hp"] = "spambot"

	_, err := s.Validate(p)
	verr := requireRejected(t, err, ReasonSpam)
	require.Equal(t, "Erro de validação", verr.Message)

	// checked before anything else
	_, err = s.Validate(Payload{"_hp": "x"})
	requireRejected(t, err, ReasonSpam)
}

func TestValidateEmptyPayload(t *testing.T) {
	_, err := mustForm(t, "inscricao").Validate(Payload{})
	verr := requireRejected(t, err, ReasonEmpty)
	require.Equal(t, "Nenhum dado recebido", verr.Message)
}

func TestValidateListsAllMissingFields(t *testing.T) {
	s := mustForm(t, "inscricao")

	_, err := s.Validate(Payload{"nome": "Ana", "email": "  ", "curso": "EE"})
	verr := requireRejected(t, err, ReasonMissing)
	require.Equal(t, []string{"email", "telefone", "faculdade", "ingresso"}, verr.Fields)
	require.Equal(t, "Campos obrigatórios faltando: email, telefone, faculdade, ingresso", verr.Message)
}

func TestValidateConsent(t *testing.T) {
	s := mustForm(t, "hackathon")

	for _, v := range []string{"on", "TRUE", "1", "Yes", "checked", " on "} {
		p := hackathonPayload()
		p["terms"] = v
		sub, err := s.Validate(p)
		require.NoError(t, err, v)
		require.Equal(t, true, sub["terms"])
	}

	for _, v := range []any{"false", "off", "0", "", nil} {
		p := hackathonPayload()
		p["terms"] = v
		_, err := s.Validate(p)
		verr := requireRejected(t, err, ReasonConsent)
		require.Equal(t, "É necessário aceitar os termos de uso.", verr.Message)
	}

	p := hackathonPayload()
	delete(p, "terms")
	_, err := s.Validate(p)
	requireRejected(t, err, ReasonConsent)
}

func TestValidateMissingBeforeConsent(t *testing.T) {
	p := hackathonPayload()
	p["terms"] = "false"
	delete(p, "team_name")

	_, err := mustForm(t, "hackathon").Validate(p)
	requireRejected(t, err, ReasonMissing)
}

func TestValidateFormats(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	reg.CheckFormats(true)
	s, _ := reg.Get("hackathon")

	p := hackathonPayload()
	p["leader_email"] = "not-an-email"
	p["member2_email"] = "b@"

	_, err = s.Validate(p)
	verr := requireRejected(t, err, ReasonInvalid)
	require.Equal(t, []string{"leader_email", "member2_email"}, verr.Fields)

	p["leader_email"] = "a@x.com"
	p["member2_email"] = ""
	_, err = s.Validate(p)
	require.NoError(t, err)
}

func TestValidateFormatsOffByDefault(t *testing.T) {
	s := mustForm(t, "hackathon")
	p := hackathonPayload()
	p["leader_email"] = "not-an-email"

	sub, err := s.Validate(p)
	require.NoError(t, err)
	require.Equal(t, "not-an-email", sub["leader_email"])
}

func TestValidateIntegerField(t *testing.T) {
	s := mustForm(t, "inscricao")
	p := Payload{
		"nome": "Ana", "email": "ana@usp.br", "telefone": "11 9999", "faculdade": "USP",
		"curso": "Engenharia Elétrica", "ingresso": "2023", "divulgacao": "Instagram, Amigos",
	}

	sub, err := s.Validate(p)
	require.NoError(t, err)
	require.Equal(t, 2023, sub["ingresso"])
	require.Nil(t, sub["nusp"])
	require.Equal(t, "Instagram, Amigos", sub["divulgacao"])

	p["ingresso"] = "vinte"
	sub, err = s.Validate(p)
	require.NoError(t, err)
	require.Nil(t, sub["ingresso"])

	row := s.BuildRow(sub).Map()
	require.Contains(t, row, "ano_ingresso")
	require.NotContains(t, row, "ingresso")
}

func TestBuildRowIgnoresUndeclaredKeys(t *testing.T) {
	s := mustForm(t, "minicurso-fibra")
	p := Payload{"nome": "Bia", "telefone": "1199", "is_admin": "true", "id": "7"}

	sub, err := s.Validate(p)
	require.NoError(t, err)
	require.Equal(t, []string{"nome", "telefone", "nusp"}, s.BuildRow(sub).Columns())
}

func TestValidateCapsLengths(t *testing.T) {
	s := mustForm(t, "minicurso-quantica")
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'n'
	}

	sub, err := s.Validate(Payload{"nome": string(long), "telefone": "1", "email": "q@x.io"})
	require.NoError(t, err)
	require.Len(t, sub["nome"], 150)
}

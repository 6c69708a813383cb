package resume

import "testing"

func TestValidateHeader(t *testing.T) {
	if err := ValidateHeader(Header{FullName: "Alice"}); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}
	if err := ValidateHeader(Header{FullName: "   ", Title: "Engineer"}); err == nil {
		t.Fatal("blank full name accepted")
	}
}

func TestValidateExperiences(t *testing.T) {
	if err := ValidateExperiences([]Experience{{Role: "Engineer"}}); err != nil {
		t.Fatalf("role-only entry rejected: %v", err)
	}
	if err := ValidateExperiences([]Experience{{Company: "Acme"}}); err != nil {
		t.Fatalf("company-only entry rejected: %v", err)
	}
	err := ValidateExperiences([]Experience{{Role: "Engineer", Company: "Acme"}, {Period: "2020"}})
	if err == nil {
		t.Fatal("entry without role and company accepted")
	}
}

func TestValidateListSections(t *testing.T) {
	if err := ValidateProjects([]Project{{Description: "no title"}}); err == nil {
		t.Fatal("project without title accepted")
	}
	if err := ValidateSkills([]Skill{{Category: "Languages"}}); err == nil {
		t.Fatal("skill without name accepted")
	}
	if err := ValidateEducations([]Education{{Degree: "BSc"}}); err == nil {
		t.Fatal("education without institution accepted")
	}
	if err := ValidateCertifications([]Certification{{Issuer: "CNCF"}}); err == nil {
		t.Fatal("certification without name accepted")
	}
}

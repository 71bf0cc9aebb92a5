package generator

import "slices"

// GeneralSubject is the label used when a topic fits no taxonomy entry.
const GeneralSubject = "General"

var subjects = [...]string{
	"Accounting", "Actuarial Science", "Agriculture", "Algorithms", "Anatomy", "Anthropology",
	"Archaeology", "Architecture", "Art", "Artificial Intelligence", "Assembly Language", "Astronomy",
	"Bash/Shell Scripting", "Biochemistry", "Biology", "Biomedical Engineering", "Blockchain",
	"Business Studies", "C", "C#", "C++", "Calculus", "Chemical Engineering", "Chemistry",
	"Civil Engineering", "Cloud Computing", "Communication", "Compiler Design",
	"Computer Engineering", "Computer Graphics", "Computer Networks", "Computer Science",
	"Constitutional Law", "Control Systems", "Corporate Law", "Creative Writing", "Criminal Justice",
	"Cultural Studies", "Cybersecurity", "Dance", "Data Science", "Data Structures",
	"Database Management Systems", "Dentistry", "DevOps", "Dietetics", "Discrete Mathematics",
	"Ecology", "Economics", "Education", "Electrical Engineering", "Electromagnetism", "English",
	"Entrepreneurship", "Environmental Law", "Environmental Science", "Ethics", "Fashion Design",
	"Film Studies", "Finance", "Fine Arts", "Fisheries", "Forestry", "Game Development",
	"Gender Studies", "Genetics", "Geography", "Geology", "Go", "Graphic Design", "Haskell",
	"Health Education", "Hindi", "History", "Hospitality Management", "HTML/CSS", "Human Resources",
	"Human Rights Law", "Human-Computer Interaction", "Industrial Engineering", "Information Systems",
	"Inorganic Chemistry", "International Business", "International Law", "Internet of Things (IoT)",
	"Java", "JavaScript", "Journalism", "Kotlin", "Law", "Library Science", "Linguistics",
	"Linear Algebra", "Literature", "Logic", "Lua", "Machine Learning", "Management", "Marketing",
	"Materials Science", "Mathematics", "MATLAB", "Mechanical Engineering", "Media Studies",
	"Medicine", "Meteorology", "Microbiology", "Mobile Development", "Music", "Nanotechnology",
	"Nursing", "Nutrition", "Oceanography", "Operations Management", "Operating Systems",
	"Organic Chemistry", "Pathology", "Perl", "Pharmacology", "Philosophy", "Photography",
	"Physical Chemistry", "Physical Education", "Physics", "Physiology", "Political Science",
	"Programming Languages", "Psychology", "Public Health", "Public Relations", "Python",
	"Quantum Physics", "R", "Religious Studies", "Ruby", "Rust", "Scala", "Sociology",
	"Software Engineering", "Software Testing", "Sports Science", "SQL", "Statistics",
	"Supply Chain Management", "Swift", "Theater", "Theory of Computation", "Thermodynamics",
	"Tourism", "TypeScript", "Urban Planning", "Veterinary Science", "Web Development",
}

var subjectSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		set[s] = struct{}{}
	}
	return set
}()

// Subjects returns a copy of the taxonomy in its canonical order.
func Subjects() []string {
	return slices.Clone(subjects[:])
}

// IsSubject reports whether name is an exact, case-sensitive taxonomy member.
func IsSubject(name string) bool {
	_, ok := subjectSet[name]
	return ok
}

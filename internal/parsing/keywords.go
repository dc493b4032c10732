package parsing

// skillKeywords is the lookup table for heuristic skill extraction. Entries
// are matched case-insensitively on token boundaries and reported in the
// spelling given here.
var skillKeywords = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust",
	"swift", "kotlin", "scala", "matlab", "sql", "html", "css", "bash", "powershell",

	// Frameworks and libraries
	"react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "laravel",
	"rails", "asp.net", "jquery", "bootstrap", "tailwind", "tensorflow", "pytorch", "keras",
	"pandas", "numpy", "scikit-learn", "opencv", "matplotlib", "seaborn",

	// Databases
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra", "oracle",
	"sqlite", "dynamodb", "firebase", "supabase",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "gitlab", "github actions",
	"terraform", "ansible", "chef", "puppet", "vagrant", "nginx", "apache",

	// Tools
	"git", "jira", "confluence", "figma", "tableau", "power bi", "excel",
	"google analytics", "salesforce", "hubspot",

	// Methodologies and protocols
	"agile", "scrum", "kanban", "devops", "ci/cd", "tdd", "bdd", "microservices",
	"rest api", "graphql", "soap", "oauth", "jwt", "grpc",

	// ML and data
	"machine learning", "deep learning", "natural language processing", "computer vision",
	"data analysis", "data engineering", "etl", "spark", "hadoop", "airflow", "kafka",
	"ml", "ai", "nlp",
}

// educationFields lists fields of study recognized when a degree line
// does not name its field explicitly.
var educationFields = []string{
	"computer science", "software engineering", "information technology", "data science",
	"machine learning", "artificial intelligence", "cybersecurity", "business administration",
	"electrical engineering", "computer engineering", "engineering", "mathematics",
	"statistics", "physics", "chemistry", "biology", "economics",
}

// certificationKeywords is the lookup table for certification extraction.
var certificationKeywords = []string{
	"aws certified", "azure certified", "google cloud certified", "cisco certified",
	"microsoft certified", "oracle certified", "salesforce certified", "pmp",
	"scrum master", "product owner", "itil", "six sigma", "comptia", "cissp",
	"ceh", "cisa", "cism", "prince2", "togaf", "cka", "ckad",
}

package config

// DefaultDomainTips returns the built-in preparation tips per interview domain.
func DefaultDomainTips() map[string][]string {
	return map[string][]string{
		"Python": {
			"Demonstrate understanding of Python-specific concepts like list comprehensions and generators",
			"Be ready to explain the GIL (Global Interpreter Lock) and its implications",
			"Show knowledge of Python's memory management and garbage collection",
			"Be familiar with popular libraries like NumPy, Pandas, or Django depending on the role",
		},
		"JavaScript": {
			"Understand JavaScript's event loop and asynchronous programming",
			"Be comfortable explaining closures, prototypes, and 'this' keyword",
			"Demonstrate knowledge of ES6+ features",
			"Be familiar with popular frameworks like React, Vue, or Angular",
		},
		"Java": {
			"Show understanding of Java's object-oriented principles",
			"Be ready to explain the JVM, garbage collection, and memory management",
			"Demonstrate knowledge of Java collections framework",
			"Be familiar with build tools like Maven or Gradle",
		},
		"C++": {
			"Demonstrate understanding of memory management and pointers",
			"Show knowledge of C++ specific features like templates and STL",
			"Be ready to discuss efficiency and performance optimizations",
			"Be familiar with modern C++ standards (C++11 and beyond)",
		},
		"C#": {
			"Show understanding of .NET framework and its components",
			"Demonstrate knowledge of LINQ and asynchronous programming",
			"Be ready to discuss garbage collection in .NET",
			"Be familiar with ASP.NET for web development roles",
		},
		"SQL": {
			"Be able to write complex queries with joins and subqueries",
			"Demonstrate understanding of indexing and query optimization",
			"Show knowledge of database normalization principles",
			"Be familiar with database transactions and ACID properties",
		},
		"Data Structures & Algorithms": {
			"Be prepared to analyze the time and space complexity of your solutions",
			"Practice implementing common data structures from scratch",
			"Be ready to optimize brute force solutions",
			"Understand graph algorithms and dynamic programming",
		},
		"Web Development": {
			"Demonstrate knowledge of HTTP protocol and RESTful APIs",
			"Be familiar with frontend frameworks and backend technologies",
			"Show understanding of responsive design and accessibility",
			"Be ready to discuss web security and common vulnerabilities",
		},
	}
}

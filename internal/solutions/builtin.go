package solutions

// Builtin returns the reference solutions for the built-in curriculum.
func Builtin() *Table {
	t := &Table{}
	for _, s := range builtin {
		t.set(s.level, s.code)
	}
	return t
}

var builtin = []struct {
	level string
	code  string
}{
	{
		level: "Hello Rust",
		code: `fn main() {
    println!("Hello, Rust!");
}
`,
	},
	{
		level: "Functions and Loops",
		code: `// Walk to the key, then to the goal.
fn main() {
    move_bot("right");
    move_bot("right");
    grab();
    move_bot("down");
    move_bot("down");
    move_bot("down");
    move_bot("right");
    grab();
    println!("Collected {} items", 2);
}
`,
	},
	{
		level: "Primitives",
		code: `fn main() {
    let apples: i32 = 40;
    let pears = 2;
    let total = 42;
    println!("Apples: {}, pears: {}", apples, pears);
    println!("Total: {}", total);
}
`,
	},
	{
		level: "Bindings and Mutability",
		code: `fn main() {
    let direction = "right";
    let mut steps = 0;
    move_bot(direction);
    move_bot(direction);
    steps += 2;
    grab();
    println!("Grabbed the gem after moving {direction}");
}
`,
	},
	{
		level: "Doors and Scanning",
		code: `fn main() {
    scan("right");
    move_bot("right");
    open_door();
    move_bot("right");
    move_bot("right");
    scan("right");
    grab();
}
`,
	},
	{
		level: "Understanding Errors",
		code: `fn main() {
    println!("This is a normal message");
    eprintln!("This is an error message!");
}
`,
	},
	{
		level: "Flow Control",
		code: `fn main() {
    let should_move_right = true;
    let should_move_down = true;

    println!("Making decisions with if statements!");
    if should_move_right {
        move_bot("right");
        move_bot("right");
        move_bot("right");
    }
    if should_move_down {
        move_bot("down");
        move_bot("down");
    }
    grab();
    println!("Conditional movement complete!");
}
`,
	},
}
